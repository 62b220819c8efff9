package app

import (
	"github.com/amirasaad/finhealth/pkg/handler"
)

// setupEventBus registers the change handlers. Cache invalidation always runs
// in process; regeneration runs here only when no worker owns it.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger

	handler.RegisterAll(bus, handler.InvalidateOnChange(a.InsightService, logger))
	if a.Config.Insights.Inline {
		handler.RegisterAll(bus, handler.RegenerateOnChange(a.InsightService, logger))
		logger.Info("insight regeneration runs inline")
	}
}
