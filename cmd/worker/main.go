// Command worker consumes record change events from the broker and
// periodically regenerates every user's insights and predictions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/finhealth/infra/initializer"
	"github.com/amirasaad/finhealth/pkg/app"
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/worker"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	// The worker always regenerates on change; the API may leave it to us.
	insights := *cfg.Insights
	insights.Inline = true
	cfg.Insights = &insights

	deps, err := initializer.InitializeDependencies(cfg, initializer.RoleWorker)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close() //nolint:errcheck

	a := app.New(deps.Deps, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps.Logger.Info("worker started",
		"exchange", cfg.Broker.Exchange,
		"sweep_interval", cfg.Insights.SweepInterval)
	sweeper, err := worker.NewSweeper(deps.Uow, a.InsightService, cfg.Insights.SweepInterval, deps.Logger)
	if err != nil {
		return err
	}
	err = sweeper.Run(ctx)
	deps.Logger.Info("worker stopped")
	return err
}
