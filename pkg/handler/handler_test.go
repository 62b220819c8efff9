package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	infraeventbus "github.com/amirasaad/finhealth/infra/eventbus"
	"github.com/amirasaad/finhealth/pkg/domain/events"
	"github.com/amirasaad/finhealth/pkg/handler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockRegenerator struct {
	mock.Mock
}

func (m *mockRegenerator) Regenerate(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type unrelated struct{}

func (unrelated) Type() string { return "Unrelated" }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInvalidateOnChange(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("invalidates the event's user", func(t *testing.T) {
		inv := &mockInvalidator{}
		inv.On("Invalidate", ctx, userID).Return(nil).Once()
		h := handler.InvalidateOnChange(inv, discard())
		require.NoError(t, h(ctx, events.NewBudgetsChanged(userID, events.ActionUpdated)))
		inv.AssertExpectations(t)
	})

	t.Run("returns the cache error", func(t *testing.T) {
		inv := &mockInvalidator{}
		boom := errors.New("redis down")
		inv.On("Invalidate", ctx, userID).Return(boom)
		h := handler.InvalidateOnChange(inv, discard())
		assert.ErrorIs(t, h(ctx, events.NewTransactionsChanged(userID, events.ActionCreated, 1)), boom)
	})

	t.Run("skips unrelated events", func(t *testing.T) {
		inv := &mockInvalidator{}
		h := handler.InvalidateOnChange(inv, discard())
		require.NoError(t, h(ctx, unrelated{}))
		inv.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}

func TestRegenerateOnChange(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	gen := &mockRegenerator{}
	gen.On("Regenerate", ctx, userID).Return(nil).Once()

	h := handler.RegenerateOnChange(gen, discard())
	require.NoError(t, h(ctx, events.NewGoalsChanged(userID, events.ActionDeleted)))
	require.NoError(t, h(ctx, unrelated{}))
	gen.AssertExpectations(t)
}

func TestRegisterAll_DispatchesEveryChangeEvent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bus := infraeventbus.NewWithMemory(discard())
	inv := &mockInvalidator{}
	inv.On("Invalidate", mock.Anything, userID).Return(nil).Times(3)

	handler.RegisterAll(bus, handler.InvalidateOnChange(inv, discard()))
	require.NoError(t, bus.Emit(ctx, events.NewTransactionsChanged(userID, events.ActionImported, 5)))
	require.NoError(t, bus.Emit(ctx, events.NewBudgetsChanged(userID, events.ActionCreated)))
	require.NoError(t, bus.Emit(ctx, events.NewGoalsChanged(userID, events.ActionCreated)))
	inv.AssertExpectations(t)
}
