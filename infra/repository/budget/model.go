package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a persisted monthly category cap. The limit lives in
// limit_amount because LIMIT is reserved in SQL.
type Budget struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Category  string          `gorm:"size:100;not null"`
	Limit     decimal.Decimal `gorm:"column:limit_amount;type:decimal(12,2);not null"`
	Spent     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Month     time.Time       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Budget model.
func (Budget) TableName() string {
	return "budgets"
}
