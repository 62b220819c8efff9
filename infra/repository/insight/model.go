package insight

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialInsight represents a persisted piece of generated advice.
type FinancialInsight struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null"`
	Title       string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text;not null"`
	Type        string         `gorm:"type:varchar(16);not null"`
	Priority    string         `gorm:"type:varchar(16);not null;default:'medium'"`
	Read        bool           `gorm:"column:is_read;not null;default:false"`
	Actionable  bool           `gorm:"not null;default:false"`
	Source      string         `gorm:"size:32"`
	Metadata    map[string]any `gorm:"serializer:json"`
	CreatedAt   time.Time      `gorm:"index"`
}

// TableName specifies the table name for the FinancialInsight model.
func (FinancialInsight) TableName() string {
	return "financial_insights"
}

// SpendingPrediction represents a persisted category forecast.
type SpendingPrediction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	Category        string          `gorm:"size:100;not null"`
	PredictedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Confidence      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Period          string          `gorm:"size:32;not null"`
	ForecastDate    time.Time       `gorm:"index;not null"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the SpendingPrediction model.
func (SpendingPrediction) TableName() string {
	return "spending_predictions"
}
