package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

var (
	// ErrGoalNotFound is returned when the goal does not exist for the caller.
	ErrGoalNotFound = fmt.Errorf("savings goal not found: %w", domain.ErrNotFound)
	// ErrMissingFields is returned when name, target amount or deadline is absent.
	ErrMissingFields = fmt.Errorf("%w: name, targetAmount and deadline are required", domain.ErrValidation)
	// ErrInvalidPriority is returned for a priority outside low, medium and high.
	ErrInvalidPriority = fmt.Errorf("%w: priority must be low, medium or high", domain.ErrValidation)
	// ErrInvalidStatus is returned for a status outside active, completed and abandoned.
	ErrInvalidStatus = fmt.Errorf("%w: status must be active, completed or abandoned", domain.ErrValidation)
)

// Goal is a savings target with a deadline.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Description  string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	Deadline     time.Time
	Priority     Priority
	Status       Status
}

// New validates the required fields. Priority defaults to medium, status to
// active and the saved amount to zero.
func New(
	userID uuid.UUID,
	name, description string,
	target decimal.Decimal,
	saved *decimal.Decimal,
	deadline *time.Time,
	priority Priority,
	status Status,
) (*Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" || target.IsZero() || deadline == nil || deadline.IsZero() {
		return nil, ErrMissingFields
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if status == "" {
		status = StatusActive
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	s := decimal.Zero
	if saved != nil {
		s = *saved
	}
	return &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Description:  description,
		TargetAmount: target,
		SavedAmount:  s,
		Deadline:     deadline.UTC(),
		Priority:     priority,
		Status:       status,
	}, nil
}

// Overdue reports whether an active goal missed its deadline without reaching the target.
func (g Goal) Overdue(now time.Time) bool {
	return g.Status == StatusActive &&
		now.After(g.Deadline) &&
		g.SavedAmount.LessThan(g.TargetAmount)
}
