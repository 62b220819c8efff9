package insight

import (
	"context"
	"time"

	repocommon "github.com/amirasaad/finhealth/infra/repository/common"
	domaininsight "github.com/amirasaad/finhealth/pkg/domain/insight"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository/insight"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM backed insight and prediction repository.
func New(db *gorm.DB) insight.Repository {
	return &repository{db: db}
}

func (r *repository) Latest(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*dto.InsightRead, error) {
	var rows []FinancialInsight
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	result := make([]*dto.InsightRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapInsightToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&FinancialInsight{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return repocommon.RequireAffected(res, domaininsight.ErrInsightNotFound)
}

func (r *repository) CreateInsights(ctx context.Context, creates []*dto.InsightCreate) error {
	if len(creates) == 0 {
		return nil
	}
	rows := make([]*FinancialInsight, 0, len(creates))
	for _, c := range creates {
		rows = append(rows, &FinancialInsight{
			ID:          c.ID,
			UserID:      c.UserID,
			Title:       c.Title,
			Description: c.Description,
			Type:        string(c.Type),
			Priority:    string(c.Priority),
			Actionable:  c.Actionable,
			Source:      c.Source,
			Metadata:    c.Metadata,
		})
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(rows).Error
	})
}

func (r *repository) DeleteUnreadFromSource(
	ctx context.Context,
	userID uuid.UUID,
	source string,
) error {
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND source = ? AND is_read = ?", userID, source, false).
			Delete(&FinancialInsight{}).Error
	})
}

func (r *repository) Upcoming(
	ctx context.Context,
	userID uuid.UUID,
	from time.Time,
	limit int,
) ([]*dto.PredictionRead, error) {
	var rows []SpendingPrediction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND forecast_date >= ?", userID, from.UTC()).
		Order("forecast_date ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	result := make([]*dto.PredictionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapPredictionToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) CreatePredictions(ctx context.Context, creates []*dto.PredictionCreate) error {
	if len(creates) == 0 {
		return nil
	}
	rows := make([]*SpendingPrediction, 0, len(creates))
	for _, c := range creates {
		rows = append(rows, &SpendingPrediction{
			ID:              c.ID,
			UserID:          c.UserID,
			Category:        c.Category,
			PredictedAmount: c.PredictedAmount,
			Confidence:      c.Confidence,
			Period:          c.Period,
			ForecastDate:    c.ForecastDate.UTC(),
		})
	}
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).Create(rows).Error
	})
}

func (r *repository) DeletePredictionsFrom(
	ctx context.Context,
	userID uuid.UUID,
	from time.Time,
) error {
	return repocommon.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND forecast_date >= ?", userID, from.UTC()).
			Delete(&SpendingPrediction{}).Error
	})
}

func mapInsightToDTO(m *FinancialInsight) *dto.InsightRead {
	return &dto.InsightRead{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Type:        domaininsight.Kind(m.Type),
		Priority:    domaininsight.Priority(m.Priority),
		Read:        m.Read,
		Actionable:  m.Actionable,
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt,
	}
}

func mapPredictionToDTO(m *SpendingPrediction) *dto.PredictionRead {
	return &dto.PredictionRead{
		ID:              m.ID,
		UserID:          m.UserID,
		Category:        m.Category,
		PredictedAmount: m.PredictedAmount,
		Confidence:      m.Confidence,
		Period:          m.Period,
		ForecastDate:    m.ForecastDate.UTC(),
		CreatedAt:       m.CreatedAt,
	}
}

var _ insight.Repository = (*repository)(nil)
