package budget

import (
	"context"

	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for budget data access, scoped per owner.
type Repository interface {
	Create(ctx context.Context, create *dto.BudgetCreate) error
	Update(ctx context.Context, userID, id uuid.UUID, update *dto.BudgetUpdate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.BudgetRead, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// List returns the owner's budgets, most recent month first.
	List(ctx context.Context, userID uuid.UUID, filter dto.BudgetFilter) ([]*dto.BudgetRead, error)
}
