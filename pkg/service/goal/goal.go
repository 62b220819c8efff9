package goal

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/events"
	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/eventbus"
	"github.com/amirasaad/finhealth/pkg/repository"
	goalrepo "github.com/amirasaad/finhealth/pkg/repository/goal"
	"github.com/google/uuid"
)

type Service struct {
	bus    eventbus.Bus
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(
	bus eventbus.Bus,
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{bus: bus, uow: uow, logger: logger}
}

func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.GoalFilter,
) (goals []*dto.GoalRead, err error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, goal.ErrInvalidStatus
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[goalrepo.Repository](uow)
		if err != nil {
			return err
		}
		goals, err = repo.List(ctx, userID, filter)
		return err
	})
	return
}

func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (g *dto.GoalRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[goalrepo.Repository](uow)
		if err != nil {
			return err
		}
		g, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.GoalCreate,
) (*dto.GoalRead, error) {
	log := s.logger.With("context", "CreateGoal", "userID", userID)
	var deadline *time.Time
	if !in.Deadline.IsZero() {
		deadline = &in.Deadline
	}
	g, err := goal.New(userID, in.Name, in.Description, in.TargetAmount, &in.SavedAmount, deadline, in.Priority, in.Status)
	if err != nil {
		log.Warn("invalid goal", "error", err)
		return nil, err
	}

	var created *dto.GoalRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[goalrepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.GoalCreate{
			ID:           g.ID,
			UserID:       g.UserID,
			Name:         g.Name,
			Description:  g.Description,
			TargetAmount: g.TargetAmount,
			SavedAmount:  g.SavedAmount,
			Deadline:     g.Deadline,
			Priority:     g.Priority,
			Status:       g.Status,
		}); err != nil {
			return err
		}
		created, err = repo.Get(ctx, userID, g.ID)
		return err
	})
	if err != nil {
		log.Error("CreateGoal failed", "error", err)
		return nil, err
	}
	s.emit(ctx, events.NewGoalsChanged(userID, events.ActionCreated))
	return created, nil
}

// Update merges the supplied fields. Priority and status are checked
// individually; the merged goal is not revalidated.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.GoalUpdate,
) (*dto.GoalRead, error) {
	if update.Priority != nil && !update.Priority.Valid() {
		return nil, goal.ErrInvalidPriority
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, goal.ErrInvalidStatus
	}
	var updated *dto.GoalRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[goalrepo.Repository](uow)
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
		s.logger.Error("UpdateGoal failed", "userID", userID, "goalID", id, "error", err)
		return nil, err
	}
	s.emit(ctx, events.NewGoalsChanged(userID, events.ActionUpdated))
	return updated, nil
}

func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[goalrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, userID, id)
	})
	if err != nil {
		s.logger.Error("DeleteGoal failed", "userID", userID, "goalID", id, "error", err)
		return err
	}
	s.emit(ctx, events.NewGoalsChanged(userID, events.ActionDeleted))
	return nil
}

func (s *Service) emit(ctx context.Context, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("failed to emit event", "type", e.Type(), "error", err)
	}
}
