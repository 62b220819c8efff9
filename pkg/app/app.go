package app

import (
	"log/slog"

	"github.com/amirasaad/finhealth/pkg/cache"
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/eventbus"
	"github.com/amirasaad/finhealth/pkg/repository"
	"github.com/amirasaad/finhealth/pkg/service/auth"
	"github.com/amirasaad/finhealth/pkg/service/budget"
	"github.com/amirasaad/finhealth/pkg/service/goal"
	"github.com/amirasaad/finhealth/pkg/service/insight"
	"github.com/amirasaad/finhealth/pkg/service/transaction"
	"github.com/amirasaad/finhealth/pkg/service/user"
)

// Deps contains the infrastructure shared by every service.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Cache    cache.Cache
	Logger   *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	UserService        *user.Service
	TransactionService *transaction.Service
	BudgetService      *budget.Service
	GoalService        *goal.Service
	InsightService     *insight.Service
}

// New builds every service and subscribes the change handlers to the bus.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.AuthService = auth.New(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	app.UserService = user.New(deps.Uow, deps.Logger)
	app.TransactionService = transaction.New(deps.EventBus, deps.Uow, deps.Logger)
	app.BudgetService = budget.New(deps.EventBus, deps.Uow, cfg.Insights.LookbackDays, deps.Logger)
	app.GoalService = goal.New(deps.EventBus, deps.Uow, deps.Logger)
	app.InsightService = insight.New(deps.Uow, deps.Cache, cfg.Cache.TTL, cfg.Insights, deps.Logger)
	app.setupEventBus()
	return app
}
