package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finhealth/pkg/analytics"
	"github.com/amirasaad/finhealth/pkg/domain/budget"
	"github.com/amirasaad/finhealth/pkg/domain/events"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/eventbus"
	"github.com/amirasaad/finhealth/pkg/repository"
	budgetrepo "github.com/amirasaad/finhealth/pkg/repository/budget"
	txrepo "github.com/amirasaad/finhealth/pkg/repository/transaction"
	"github.com/google/uuid"
)

type Service struct {
	bus          eventbus.Bus
	uow          repository.UnitOfWork
	lookbackDays int
	logger       *slog.Logger
}

// New creates the budget service. lookbackDays bounds the spending history
// used for recommendations.
func New(
	bus eventbus.Bus,
	uow repository.UnitOfWork,
	lookbackDays int,
	logger *slog.Logger,
) *Service {
	if lookbackDays <= 0 {
		lookbackDays = 90
	}
	return &Service{bus: bus, uow: uow, lookbackDays: lookbackDays, logger: logger}
}

func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.BudgetFilter,
) (budgets []*dto.BudgetRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		budgets, err = repo.List(ctx, userID, filter)
		return err
	})
	return
}

func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (b *dto.BudgetRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		b, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.BudgetCreate,
) (*dto.BudgetRead, error) {
	log := s.logger.With("context", "CreateBudget", "userID", userID)
	var month *time.Time
	if !in.Month.IsZero() {
		month = &in.Month
	}
	b, err := budget.New(userID, in.Category, in.Limit, &in.Spent, month)
	if err != nil {
		log.Warn("invalid budget", "error", err)
		return nil, err
	}

	var created *dto.BudgetRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.BudgetCreate{
			ID:       b.ID,
			UserID:   b.UserID,
			Category: b.Category,
			Limit:    b.Limit,
			Spent:    b.Spent,
			Month:    b.Month,
		}); err != nil {
			return err
		}
		created, err = repo.Get(ctx, userID, b.ID)
		return err
	})
	if err != nil {
		log.Error("CreateBudget failed", "error", err)
		return nil, err
	}
	s.emit(ctx, events.NewBudgetsChanged(userID, events.ActionCreated))
	return created, nil
}

// Update merges the supplied fields. The repository normalizes a new month
// to its first day.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.BudgetUpdate,
) (*dto.BudgetRead, error) {
	var updated *dto.BudgetRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, id, update); err != nil {
			return err
		}
		updated, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		s.logger.Error("UpdateBudget failed", "userID", userID, "budgetID", id, "error", err)
		return nil, err
	}
	s.emit(ctx, events.NewBudgetsChanged(userID, events.ActionUpdated))
	return updated, nil
}

func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[budgetrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, userID, id)
	})
	if err != nil {
		s.logger.Error("DeleteBudget failed", "userID", userID, "budgetID", id, "error", err)
		return err
	}
	s.emit(ctx, events.NewBudgetsChanged(userID, events.ActionDeleted))
	return nil
}

// Recommendations suggests per-category caps from the lookback window's expenses.
func (s *Service) Recommendations(
	ctx context.Context,
	userID uuid.UUID,
) ([]dto.BudgetRecommendation, error) {
	since := time.Now().UTC().AddDate(0, 0, -s.lookbackDays)
	var txs []*dto.TransactionRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		txs, err = repo.ListSince(ctx, userID, since)
		return err
	})
	if err != nil {
		s.logger.Error("Recommendations failed", "userID", userID, "error", err)
		return nil, err
	}
	return analytics.RecommendBudgets(txs), nil
}

func (s *Service) emit(ctx context.Context, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("failed to emit event", "type", e.Type(), "error", err)
	}
}
