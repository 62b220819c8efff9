package dto

import (
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/insight"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InsightRead struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        insight.Kind     `json:"type"`
	Priority    insight.Priority `json:"priority"`
	Read        bool             `json:"read"`
	Actionable  bool             `json:"actionable"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type InsightCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Type        insight.Kind
	Priority    insight.Priority
	Actionable  bool
	Source      string
	Metadata    map[string]any
}

type PredictionRead struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Category        string          `json:"category"`
	PredictedAmount decimal.Decimal `json:"predictedAmount"`
	Confidence      decimal.Decimal `json:"confidence"`
	Period          string          `json:"period"`
	ForecastDate    time.Time       `json:"forecastDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type PredictionCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Category        string
	PredictedAmount decimal.Decimal
	Confidence      decimal.Decimal
	Period          string
	ForecastDate    time.Time
}
