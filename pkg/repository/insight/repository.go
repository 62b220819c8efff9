package insight

import (
	"context"
	"time"

	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for generated insights and spending predictions.
type Repository interface {
	// Latest returns the owner's most recent insights, newest first.
	Latest(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.InsightRead, error)

	// MarkRead flags one of the owner's insights as read.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error

	// CreateInsights inserts generated insights.
	CreateInsights(ctx context.Context, creates []*dto.InsightCreate) error

	// DeleteUnreadFromSource removes the owner's unread insights written by source.
	DeleteUnreadFromSource(ctx context.Context, userID uuid.UUID, source string) error

	// Upcoming returns predictions with a forecast date at or after from, soonest first.
	Upcoming(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]*dto.PredictionRead, error)

	// CreatePredictions inserts generated predictions.
	CreatePredictions(ctx context.Context, creates []*dto.PredictionCreate) error

	// DeletePredictionsFrom removes the owner's predictions forecast at or after from.
	DeletePredictionsFrom(ctx context.Context, userID uuid.UUID, from time.Time) error
}
