// Package initializer builds the process-wide dependencies from configuration.
package initializer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/amirasaad/finhealth/infra"
	infracache "github.com/amirasaad/finhealth/infra/cache"
	infraeventbus "github.com/amirasaad/finhealth/infra/eventbus"
	infrarepo "github.com/amirasaad/finhealth/infra/repository"
	"github.com/amirasaad/finhealth/pkg/app"
	"github.com/amirasaad/finhealth/pkg/cache"
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/domain/events"
	"github.com/amirasaad/finhealth/pkg/eventbus"
	"gorm.io/gorm"
)

// Role names the process the dependencies are built for. It selects the
// broker consumer group so the API and the worker each see every event.
type Role string

const (
	RoleAPI    Role = "api"
	RoleWorker Role = "worker"
)

// Deps bundles app.Deps with the resources the caller must release.
type Deps struct {
	*app.Deps
	DB      *gorm.DB
	closers []io.Closer
}

// Close releases the bus, the cache and the database connection pool.
func (d *Deps) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App, role Role) (deps *Deps, err error) {
	logger := SetupLogger(cfg.Log)
	deps = &Deps{Deps: &app.Deps{Logger: logger}}
	defer func() {
		if err != nil {
			_ = deps.Close()
			deps = nil
		}
	}()

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return deps, err
	}
	deps.DB = db
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		deps.closers = append(deps.closers, sqlDB)
	}
	if cfg.DB.AutoMigrate {
		if err = infra.RunMigrations(db, cfg.DB.Driver); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			return deps, err
		}
		logger.Info("Database schema up to date", "driver", cfg.DB.Driver)
	}
	deps.Uow = infrarepo.NewUoW(db)

	c, err := initCache(cfg, logger)
	if err != nil {
		return deps, err
	}
	deps.Cache = c
	if closer, ok := c.(io.Closer); ok {
		deps.closers = append(deps.closers, closer)
	}

	bus, err := initEventBus(cfg, role, logger)
	if err != nil {
		return deps, err
	}
	deps.EventBus = bus
	if closer, ok := bus.(io.Closer); ok {
		deps.closers = append(deps.closers, closer)
	}
	return deps, nil
}

func initCache(cfg *config.App, logger *slog.Logger) (cache.Cache, error) {
	switch cfg.Cache.Driver {
	case "", "memory":
		logger.Info("Using in-memory cache", "ttl", cfg.Cache.TTL)
		return infracache.NewMemoryCache(cfg.Cache.TTL), nil
	case "redis":
		c, err := infracache.NewRedisCache(cfg.Redis, cfg.Cache.Prefix, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis cache: %w", err)
		}
		logger.Info("Using Redis cache", "ttl", cfg.Cache.TTL)
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
	}
}

func initEventBus(cfg *config.App, role Role, logger *slog.Logger) (eventbus.Bus, error) {
	if cfg.Broker == nil || cfg.Broker.URL == "" {
		if role == RoleWorker {
			return nil, fmt.Errorf("worker requires BROKER_URL")
		}
		logger.Info("Using in-memory event bus")
		return infraeventbus.NewWithMemory(logger), nil
	}
	group := cfg.Broker.Queue + "." + string(role)
	bus, err := infraeventbus.NewWithAMQP(cfg.Broker.URL, cfg.Broker.Exchange, group, events.EventTypes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AMQP event bus: %w", err)
	}
	logger.Info("Using AMQP event bus", "exchange", cfg.Broker.Exchange, "group", group)
	return bus, nil
}
