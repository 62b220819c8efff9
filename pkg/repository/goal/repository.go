package goal

import (
	"context"

	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for savings goal data access, scoped per owner.
type Repository interface {
	Create(ctx context.Context, create *dto.GoalCreate) error
	Update(ctx context.Context, userID, id uuid.UUID, update *dto.GoalUpdate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.GoalRead, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// List returns the owner's goals, nearest deadline first.
	List(ctx context.Context, userID uuid.UUID, filter dto.GoalFilter) ([]*dto.GoalRead, error)
}
