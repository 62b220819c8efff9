// Package handler holds the event bus subscribers that keep derived data in
// step with a user's records.
package handler

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finhealth/pkg/domain/events"
	"github.com/amirasaad/finhealth/pkg/eventbus"
	"github.com/google/uuid"
)

// Invalidator drops cached reads for a user.
type Invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Regenerator rebuilds a user's insights and predictions.
type Regenerator interface {
	Regenerate(ctx context.Context, userID uuid.UUID) error
}

// InvalidateOnChange clears the cached dashboard and trends of the user whose
// records changed.
func InvalidateOnChange(inv Invalidator, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		log := logger.With("handler", "InvalidateOnChange", "event_type", e.Type())
		userID, ok := events.UserOf(e)
		if !ok {
			log.Debug("skipping unexpected event")
			return nil
		}
		if err := inv.Invalidate(ctx, userID); err != nil {
			log.Error("cache invalidation failed", "userID", userID, "error", err)
			return err
		}
		log.Debug("cache invalidated", "userID", userID)
		return nil
	}
}

// RegenerateOnChange rebuilds generated insights for the user whose records
// changed. Goal changes are included since overdue goals produce insights.
func RegenerateOnChange(gen Regenerator, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		log := logger.With("handler", "RegenerateOnChange", "event_type", e.Type())
		userID, ok := events.UserOf(e)
		if !ok {
			log.Debug("skipping unexpected event")
			return nil
		}
		if err := gen.Regenerate(ctx, userID); err != nil {
			log.Error("insight regeneration failed", "userID", userID, "error", err)
			return err
		}
		return nil
	}
}

// ChangeEventTypes lists every event type the handlers above subscribe to.
func ChangeEventTypes() []string {
	return []string{
		events.EventTypeTransactionsChanged.String(),
		events.EventTypeBudgetsChanged.String(),
		events.EventTypeGoalsChanged.String(),
	}
}

// RegisterAll subscribes h to every change event type on bus.
func RegisterAll(bus eventbus.Bus, h eventbus.HandlerFunc) {
	for _, t := range ChangeEventTypes() {
		bus.Register(t, h)
	}
}
