package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal represents a persisted savings target.
type SavingsGoal struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name         string          `gorm:"size:255;not null"`
	Description  string          `gorm:"type:text"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SavedAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Deadline     time.Time       `gorm:"not null"`
	Priority     string          `gorm:"type:varchar(16);not null;default:'medium'"`
	Status       string          `gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the SavingsGoal model.
func (SavingsGoal) TableName() string {
	return "savings_goals"
}
