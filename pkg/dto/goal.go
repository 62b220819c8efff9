package dto

import (
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalRead struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Deadline     time.Time       `json:"deadline"`
	Priority     goal.Priority   `json:"priority"`
	Status       goal.Status     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type GoalCreate struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Description  string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	Deadline     time.Time
	Priority     goal.Priority
	Status       goal.Status
}

type GoalUpdate struct {
	Name         *string
	Description  *string
	TargetAmount *decimal.Decimal
	SavedAmount  *decimal.Decimal
	Deadline     *time.Time
	Priority     *goal.Priority
	Status       *goal.Status
}

type GoalFilter struct {
	Status goal.Status
}
