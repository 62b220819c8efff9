package events

// EventType represents the type of an event in the system.
type EventType string

const (
	// Record change events
	EventTypeTransactionsChanged EventType = "Transactions.Changed"
	EventTypeBudgetsChanged      EventType = "Budgets.Changed"
	EventTypeGoalsChanged        EventType = "Goals.Changed"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
