// Package insight holds the generated advice and forecast records shown on
// the dashboard.
package insight

import (
	"fmt"

	"github.com/amirasaad/finhealth/pkg/domain"
)

type Kind string

const (
	KindWarning     Kind = "warning"
	KindTip         Kind = "tip"
	KindAchievement Kind = "achievement"
	KindGoal        Kind = "goal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// SourceGenerator marks insights written by the generator so a later run can
// replace them without touching anything else.
const SourceGenerator = "generator"

var (
	// ErrInsightNotFound is returned when the insight does not exist for the caller.
	ErrInsightNotFound = fmt.Errorf("insight not found: %w", domain.ErrNotFound)
	// ErrInvalidDays is returned when the prediction window is not a positive integer.
	ErrInvalidDays = fmt.Errorf("%w: days must be a positive integer", domain.ErrValidation)
)
