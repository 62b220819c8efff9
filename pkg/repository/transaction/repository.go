package transaction

import (
	"context"
	"time"

	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for transaction data access. Every method
// is scoped to one owner; rows of other users behave as missing.
type Repository interface {
	// Create inserts a new transaction record from a DTO.
	Create(ctx context.Context, create *dto.TransactionCreate) error

	// CreateBatch inserts many rows at once.
	CreateBatch(ctx context.Context, creates []*dto.TransactionCreate) error

	// Update applies the non-nil fields of the DTO to the owner's transaction.
	Update(ctx context.Context, userID, id uuid.UUID, update *dto.TransactionUpdate) error

	// Get retrieves one of the owner's transactions.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error)

	// Delete removes one of the owner's transactions.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns one page of the owner's transactions, newest first, and
	// the total number of rows matching the filter.
	List(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter) ([]*dto.TransactionRead, int64, error)

	// ListSince returns all of the owner's transactions dated on or after since.
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*dto.TransactionRead, error)
}
