package budget

import (
	"context"

	repocommon "github.com/amirasaad/finhealth/infra/repository/common"
	domainbudget "github.com/amirasaad/finhealth/pkg/domain/budget"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository/budget"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM backed budget repository.
func New(db *gorm.DB) budget.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.BudgetCreate) error {
	b := &Budget{
		ID:       create.ID,
		UserID:   create.UserID,
		Category: create.Category,
		Limit:    create.Limit,
		Spent:    create.Spent,
		Month:    create.Month.UTC(),
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(b).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.BudgetUpdate,
) error {
	updates := make(map[string]any)
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Limit != nil {
		updates["limit_amount"] = *update.Limit
	}
	if update.Spent != nil {
		updates["spent"] = *update.Spent
	}
	if update.Month != nil {
		updates["month"] = domainbudget.MonthStart(*update.Month)
	}
	if len(updates) == 0 {
		_, err := r.Get(ctx, userID, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(&Budget{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return repocommon.RequireAffected(res, domainbudget.ErrBudgetNotFound)
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.BudgetRead, error) {
	var b Budget
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error
	if err != nil {
		return nil, repocommon.NotFoundAs(err, domainbudget.ErrBudgetNotFound)
	}
	return mapModelToDTO(&b), nil
}

func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Budget{})
	return repocommon.RequireAffected(res, domainbudget.ErrBudgetNotFound)
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.BudgetFilter,
) ([]*dto.BudgetRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	var rows []Budget
	if err := q.Order("month DESC").Order("category ASC").Find(&rows).Error; err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	result := make([]*dto.BudgetRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func mapModelToDTO(b *Budget) *dto.BudgetRead {
	return &dto.BudgetRead{
		ID:        b.ID,
		UserID:    b.UserID,
		Category:  b.Category,
		Limit:     b.Limit,
		Spent:     b.Spent,
		Month:     b.Month.UTC(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

var _ budget.Repository = (*repository)(nil)
