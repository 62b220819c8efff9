package budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrBudgetNotFound is returned when the budget does not exist for the caller.
	ErrBudgetNotFound = fmt.Errorf("budget not found: %w", domain.ErrNotFound)
	// ErrMissingFields is returned when category or limit is absent.
	ErrMissingFields = fmt.Errorf("%w: category and limit are required", domain.ErrValidation)
)

// Budget is a monthly spending cap for one category. Spent is maintained by
// the client and never recomputed from transactions.
type Budget struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Category string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
	Month    time.Time
}

// MonthStart truncates t to midnight UTC on the first day of its month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// New validates category and limit, defaulting month to the current month
// and spent to zero.
func New(
	userID uuid.UUID,
	category string,
	limit decimal.Decimal,
	spent *decimal.Decimal,
	month *time.Time,
) (*Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" || limit.IsZero() {
		return nil, ErrMissingFields
	}
	m := MonthStart(time.Now())
	if month != nil && !month.IsZero() {
		m = MonthStart(*month)
	}
	s := decimal.Zero
	if spent != nil {
		s = *spent
	}
	return &Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Limit:    limit,
		Spent:    s,
		Month:    m,
	}, nil
}

// OverLimit reports whether spending has exceeded the cap.
func (b Budget) OverLimit() bool {
	return b.Spent.GreaterThan(b.Limit)
}
