package dto

import (
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is a read-optimized DTO for transaction queries and API responses.
type TransactionRead struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Type        transaction.Type `json:"type"`
	Date        time.Time        `json:"date"`
	Tags        []string         `json:"tags"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// TransactionCreate is a DTO for creating a new transaction.
type TransactionCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Category    string
	Type        transaction.Type
	Date        time.Time
	Tags        []string
	Notes       string
	CreatedAt   time.Time
}

// TransactionUpdate is a DTO for updating one or more fields of a transaction.
// Nil fields are left untouched.
type TransactionUpdate struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Type        *transaction.Type
	Date        *time.Time
	Tags        *[]string
	Notes       *string
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	Category  string
	Type      transaction.Type
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// TransactionPage is one page of a filtered transaction listing.
type TransactionPage struct {
	Items  []*TransactionRead `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
