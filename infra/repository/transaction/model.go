package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a persisted income or expense record.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"size:255;not null"`
	Category    string          `gorm:"size:100;index;not null"`
	Type        string          `gorm:"type:varchar(16);not null;default:'expense'"`
	Date        time.Time       `gorm:"index;not null"`
	Tags        []string        `gorm:"serializer:json"`
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
