package goal

import (
	"context"

	repocommon "github.com/amirasaad/finhealth/infra/repository/common"
	domaingoal "github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository/goal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM backed savings goal repository.
func New(db *gorm.DB) goal.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.GoalCreate) error {
	g := &SavingsGoal{
		ID:           create.ID,
		UserID:       create.UserID,
		Name:         create.Name,
		Description:  create.Description,
		TargetAmount: create.TargetAmount,
		SavedAmount:  create.SavedAmount,
		Deadline:     create.Deadline.UTC(),
		Priority:     string(create.Priority),
		Status:       string(create.Status),
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(g).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.GoalUpdate,
) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.TargetAmount != nil {
		updates["target_amount"] = *update.TargetAmount
	}
	if update.SavedAmount != nil {
		updates["saved_amount"] = *update.SavedAmount
	}
	if update.Deadline != nil {
		updates["deadline"] = update.Deadline.UTC()
	}
	if update.Priority != nil {
		updates["priority"] = string(*update.Priority)
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if len(updates) == 0 {
		_, err := r.Get(ctx, userID, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(&SavingsGoal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return repocommon.RequireAffected(res, domaingoal.ErrGoalNotFound)
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.GoalRead, error) {
	var g SavingsGoal
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&g).Error
	if err != nil {
		return nil, repocommon.NotFoundAs(err, domaingoal.ErrGoalNotFound)
	}
	return mapModelToDTO(&g), nil
}

func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&SavingsGoal{})
	return repocommon.RequireAffected(res, domaingoal.ErrGoalNotFound)
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.GoalFilter,
) ([]*dto.GoalRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	var rows []SavingsGoal
	if err := q.Order("deadline ASC").Find(&rows).Error; err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	result := make([]*dto.GoalRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func mapModelToDTO(g *SavingsGoal) *dto.GoalRead {
	return &dto.GoalRead{
		ID:           g.ID,
		UserID:       g.UserID,
		Name:         g.Name,
		Description:  g.Description,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		Deadline:     g.Deadline.UTC(),
		Priority:     domaingoal.Priority(g.Priority),
		Status:       domaingoal.Status(g.Status),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

var _ goal.Repository = (*repository)(nil)
