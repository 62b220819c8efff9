package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetRead struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Month     time.Time       `json:"month"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type BudgetCreate struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Category string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
	Month    time.Time
}

type BudgetUpdate struct {
	Category *string
	Limit    *decimal.Decimal
	Spent    *decimal.Decimal
	Month    *time.Time
}

type BudgetFilter struct {
	Category string
}
