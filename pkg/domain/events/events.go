package events

import (
	"time"

	"github.com/amirasaad/finhealth/pkg/eventbus"
	"github.com/google/uuid"
)

// Action names the mutation that produced a change event.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionImported Action = "imported"
)

// Changed is the payload shared by every change event: whose data moved and how.
type Changed struct {
	UserID     uuid.UUID `json:"userId"`
	Action     Action    `json:"action"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newChanged(userID uuid.UUID, action Action, count int) Changed {
	return Changed{UserID: userID, Action: action, Count: count, OccurredAt: time.Now().UTC()}
}

// TransactionsChanged is emitted after transactions are created, updated, deleted or imported.
type TransactionsChanged struct {
	Changed
}

func (TransactionsChanged) Type() string { return EventTypeTransactionsChanged.String() }

func NewTransactionsChanged(userID uuid.UUID, action Action, count int) *TransactionsChanged {
	return &TransactionsChanged{Changed: newChanged(userID, action, count)}
}

// BudgetsChanged is emitted after a budget is created, updated or deleted.
type BudgetsChanged struct {
	Changed
}

func (BudgetsChanged) Type() string { return EventTypeBudgetsChanged.String() }

func NewBudgetsChanged(userID uuid.UUID, action Action) *BudgetsChanged {
	return &BudgetsChanged{Changed: newChanged(userID, action, 1)}
}

// GoalsChanged is emitted after a savings goal is created, updated or deleted.
type GoalsChanged struct {
	Changed
}

func (GoalsChanged) Type() string { return EventTypeGoalsChanged.String() }

func NewGoalsChanged(userID uuid.UUID, action Action) *GoalsChanged {
	return &GoalsChanged{Changed: newChanged(userID, action, 1)}
}

// UserOf extracts the owning user from any change event.
func UserOf(e eventbus.Event) (uuid.UUID, bool) {
	switch ev := e.(type) {
	case *TransactionsChanged:
		return ev.UserID, true
	case *BudgetsChanged:
		return ev.UserID, true
	case *GoalsChanged:
		return ev.UserID, true
	}
	return uuid.Nil, false
}

// EventTypes maps wire type names to constructors for decoding envelopes.
var EventTypes = map[string]func() eventbus.Event{
	EventTypeTransactionsChanged.String(): func() eventbus.Event { return &TransactionsChanged{} },
	EventTypeBudgetsChanged.String():      func() eventbus.Event { return &BudgetsChanged{} },
	EventTypeGoalsChanged.String():        func() eventbus.Event { return &GoalsChanged{} },
}
