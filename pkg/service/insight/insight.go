// Package insight serves the aggregated views of a user's finances: the
// dashboard, monthly trends, generated insights and spending predictions.
// It also regenerates the insight and prediction rows.
package insight

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finhealth/pkg/analytics"
	"github.com/amirasaad/finhealth/pkg/cache"
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/domain/insight"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository"
	budgetrepo "github.com/amirasaad/finhealth/pkg/repository/budget"
	goalrepo "github.com/amirasaad/finhealth/pkg/repository/goal"
	insightrepo "github.com/amirasaad/finhealth/pkg/repository/insight"
	txrepo "github.com/amirasaad/finhealth/pkg/repository/transaction"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// LatestInsights is how many insights the insights view returns.
	LatestInsights = 10
	// DefaultPredictionDays is the predictions view's default row cap.
	DefaultPredictionDays = 30
)

type Service struct {
	uow      repository.UnitOfWork
	cache    cache.Cache
	cacheTTL time.Duration
	cfg      *config.Insights
	logger   *slog.Logger
	now      func() time.Time
}

// New creates the insight service. A nil cache disables read caching.
func New(
	uow repository.UnitOfWork,
	c cache.Cache,
	cacheTTL time.Duration,
	cfg *config.Insights,
	logger *slog.Logger,
) *Service {
	if cfg == nil {
		cfg = &config.Insights{LookbackDays: 90, HorizonDays: 30}
	}
	return &Service{
		uow:      uow,
		cache:    c,
		cacheTTL: cacheTTL,
		cfg:      cfg,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard summarizes the current month. The transaction and budget reads
// run concurrently, each on its own connection.
func (s *Service) Dashboard(
	ctx context.Context,
	userID uuid.UUID,
) (*dto.Dashboard, error) {
	log := s.logger.With("context", "Dashboard", "userID", userID)
	key := cache.DashboardKey(userID)
	if d, ok := cachedJSON[*dto.Dashboard](ctx, s, key); ok {
		log.Debug("dashboard cache hit")
		return d, nil
	}

	monthStart := analytics.MonthStart(s.now())
	var (
		txs     []*dto.TransactionRead
		budgets []*dto.BudgetRead
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		repo, err := repository.Get[txrepo.Repository](s.uow)
		if err != nil {
			return err
		}
		txs, err = repo.ListSince(gctx, userID, monthStart)
		return err
	})
	g.Go(func() error {
		repo, err := repository.Get[budgetrepo.Repository](s.uow)
		if err != nil {
			return err
		}
		budgets, err = repo.List(gctx, userID, dto.BudgetFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("Dashboard failed", "error", err)
		return nil, err
	}

	d := analytics.Summarize(txs, budgets)
	s.store(ctx, key, d)
	return d, nil
}

// Trends returns six months of expense totals per month and category.
func (s *Service) Trends(
	ctx context.Context,
	userID uuid.UUID,
) ([]dto.TrendRow, error) {
	key := cache.TrendsKey(userID)
	if rows, ok := cachedJSON[[]dto.TrendRow](ctx, s, key); ok {
		return rows, nil
	}

	var txs []*dto.TransactionRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		txs, err = repo.ListSince(ctx, userID, analytics.TrendWindowStart(s.now()))
		return err
	})
	if err != nil {
		s.logger.Error("Trends failed", "userID", userID, "error", err)
		return nil, err
	}
	rows := analytics.Trends(txs)
	s.store(ctx, key, rows)
	return rows, nil
}

// Insights returns the most recent insights, newest first.
func (s *Service) Insights(
	ctx context.Context,
	userID uuid.UUID,
) (out []*dto.InsightRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}
		out, err = repo.Latest(ctx, userID, LatestInsights)
		return err
	})
	return
}

// MarkRead flags one of the caller's insights as read.
func (s *Service) MarkRead(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.MarkRead(ctx, userID, id)
	})
}

// Predictions returns up to days upcoming predictions, soonest first.
func (s *Service) Predictions(
	ctx context.Context,
	userID uuid.UUID,
	days int,
) (out []*dto.PredictionRead, err error) {
	if days <= 0 {
		return nil, insight.ErrInvalidDays
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}
		out, err = repo.Upcoming(ctx, userID, s.now(), days)
		return err
	})
	return
}

// Regenerate rebuilds the user's generated insights and future predictions
// from the lookback window. Read insights are kept.
func (s *Service) Regenerate(
	ctx context.Context,
	userID uuid.UUID,
) error {
	log := s.logger.With("context", "Regenerate", "userID", userID)
	now := s.now()
	since := now.AddDate(0, 0, -s.cfg.LookbackDays)

	var (
		generated   []*dto.InsightCreate
		predictions []*dto.PredictionCreate
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		bRepo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		gRepo, err := repository.Get[goalrepo.Repository](uow)
		if err != nil {
			return err
		}
		iRepo, err := repository.Get[insightrepo.Repository](uow)
		if err != nil {
			return err
		}

		txs, err := txRepo.ListSince(ctx, userID, since)
		if err != nil {
			return err
		}
		budgets, err := bRepo.List(ctx, userID, dto.BudgetFilter{})
		if err != nil {
			return err
		}
		goals, err := gRepo.List(ctx, userID, dto.GoalFilter{})
		if err != nil {
			return err
		}

		generated = analytics.GenerateInsights(analytics.Input{
			UserID:       userID,
			Transactions: txs,
			Budgets:      budgets,
			Goals:        goals,
			Now:          now,
		})
		predictions = analytics.PredictSpending(userID, txs, now, s.cfg.HorizonDays)

		if err := iRepo.DeleteUnreadFromSource(ctx, userID, insight.SourceGenerator); err != nil {
			return err
		}
		if err := iRepo.CreateInsights(ctx, generated); err != nil {
			return err
		}
		if err := iRepo.DeletePredictionsFrom(ctx, userID, now); err != nil {
			return err
		}
		return iRepo.CreatePredictions(ctx, predictions)
	})
	if err != nil {
		log.Error("Regenerate failed", "error", err)
		return err
	}
	log.Info("insights regenerated", "insights", len(generated), "predictions", len(predictions))
	return nil
}

// Invalidate drops the user's cached dashboard and trends.
func (s *Service) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cache.UserKeys(userID)...)
}

func cachedJSON[T any](ctx context.Context, s *Service, key string) (T, bool) {
	var zero T
	if s.cache == nil {
		return zero, false
	}
	v, ok, err := cache.GetJSON[T](ctx, s.cache, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return zero, false
	}
	return v, ok
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
