package transaction

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies a transaction as money coming in or going out.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

var (
	// ErrTransactionNotFound is returned when the transaction does not exist for the caller.
	ErrTransactionNotFound = fmt.Errorf("transaction not found: %w", domain.ErrNotFound)
	// ErrMissingFields is returned when amount, description or category is absent.
	ErrMissingFields = fmt.Errorf("%w: amount, description and category are required", domain.ErrValidation)
	// ErrInvalidType is returned for a type other than income or expense.
	ErrInvalidType = fmt.Errorf("%w: type must be income or expense", domain.ErrValidation)
)

// Transaction is a single income or expense record.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Category    string
	Type        Type
	Date        time.Time
	Tags        []string
	Notes       string
}

// New validates the required fields and applies the creation defaults:
// type expense, date now and an empty tag list.
func New(
	userID uuid.UUID,
	amount decimal.Decimal,
	description, category string,
	txType Type,
	date *time.Time,
	tags []string,
	notes string,
) (*Transaction, error) {
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	if amount.IsZero() || description == "" || category == "" {
		return nil, ErrMissingFields
	}
	if txType == "" {
		txType = Expense
	}
	if !txType.Valid() {
		return nil, ErrInvalidType
	}
	when := time.Now().UTC()
	if date != nil && !date.IsZero() {
		when = date.UTC()
	}
	if tags == nil {
		tags = []string{}
	}
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Category:    category,
		Type:        txType,
		Date:        when,
		Tags:        tags,
		Notes:       notes,
	}, nil
}

// ImportError rejects a bulk import. Rows maps each failing row index to its
// validation error.
type ImportError struct {
	Rows map[int]error
}

func (e *ImportError) Error() string {
	idx := e.Indexes()
	parts := make([]string, 0, len(idx))
	for _, i := range idx {
		parts = append(parts, fmt.Sprintf("row %d: %v", i, e.Rows[i]))
	}
	return "invalid transactions: " + strings.Join(parts, "; ")
}

// Indexes lists the failing rows in ascending order.
func (e *ImportError) Indexes() []int {
	idx := make([]int, 0, len(e.Rows))
	for i := range e.Rows {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

func (e *ImportError) Unwrap() error { return domain.ErrValidation }
