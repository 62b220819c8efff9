package eventbus

import (
	"context"
)

// Event is anything published on the bus. Type is used as the routing key.
type Event interface {
	Type() string
}

// HandlerFunc processes a single event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Emit(ctx context.Context, event Event) error
	Register(eventType string, handler HandlerFunc)
}
