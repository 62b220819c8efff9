package transaction

import (
	"context"
	"encoding/json"
	"time"

	repocommon "github.com/amirasaad/finhealth/infra/repository/common"
	domaintx "github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// batchSize bounds the rows per INSERT statement during imports.
const batchSize = 200

type repository struct {
	db *gorm.DB
}

// New returns a GORM backed transaction repository.
func New(db *gorm.DB) transaction.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) error {
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(mapCreateToModel(create)).Error
	})
}

func (r *repository) CreateBatch(
	ctx context.Context,
	creates []*dto.TransactionCreate,
) error {
	if len(creates) == 0 {
		return nil
	}
	rows := make([]*Transaction, 0, len(creates))
	for _, c := range creates {
		rows = append(rows, mapCreateToModel(c))
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.TransactionUpdate,
) error {
	updates := make(map[string]any)
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Type != nil {
		updates["type"] = string(*update.Type)
	}
	if update.Date != nil {
		updates["date"] = update.Date.UTC()
	}
	if update.Tags != nil {
		raw, err := json.Marshal(*update.Tags)
		if err != nil {
			return err
		}
		updates["tags"] = string(raw)
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if len(updates) == 0 {
		_, err := r.Get(ctx, userID, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return repocommon.RequireAffected(res, domaintx.ErrTransactionNotFound)
}

func (r *repository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*dto.TransactionRead, error) {
	var tx Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if err != nil {
		return nil, repocommon.NotFoundAs(err, domaintx.ErrTransactionNotFound)
	}
	return mapModelToDTO(&tx), nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Transaction{})
	return repocommon.RequireAffected(res, domaintx.ErrTransactionNotFound)
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) ([]*dto.TransactionRead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Transaction{}).Where("user_id = ?", userID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	if filter.StartDate != nil {
		q = q.Where("date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", filter.EndDate.UTC())
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, repocommon.MapGormErrorToDomain(err)
	}

	var rows []Transaction
	err := q.Order("date DESC").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, repocommon.MapGormErrorToDomain(err)
	}
	return mapModelsToDTO(rows), total, nil
}

func (r *repository) ListSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since.UTC()).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	return mapModelsToDTO(rows), nil
}

func mapCreateToModel(c *dto.TransactionCreate) *Transaction {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Transaction{
		ID:          c.ID,
		UserID:      c.UserID,
		Amount:      c.Amount,
		Description: c.Description,
		Category:    c.Category,
		Type:        string(c.Type),
		Date:        c.Date.UTC(),
		Tags:        tags,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.CreatedAt,
	}
}

func mapModelsToDTO(rows []Transaction) []*dto.TransactionRead {
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result
}

func mapModelToDTO(tx *Transaction) *dto.TransactionRead {
	tags := tx.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.TransactionRead{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Category:    tx.Category,
		Type:        domaintx.Type(tx.Type),
		Date:        tx.Date.UTC(),
		Tags:        tags,
		Notes:       tx.Notes,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

var _ transaction.Repository = (*repository)(nil)
