// Package worker runs the background regeneration of derived user data.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finhealth/pkg/handler"
	"github.com/amirasaad/finhealth/pkg/repository"
	userrepo "github.com/amirasaad/finhealth/pkg/repository/user"
	"github.com/google/uuid"
)

// DefaultBatchSize is how many user ids a sweep reads per page.
const DefaultBatchSize = 100

// ErrInvalidInterval is returned for a sweep interval that is not positive.
var ErrInvalidInterval = errors.New("worker: sweep interval must be positive")

// Sweeper periodically regenerates insights and predictions for every user,
// so time-driven rules (overdue goals, expired predictions) fire without a
// record change.
type Sweeper struct {
	uow       repository.UnitOfWork
	gen       handler.Regenerator
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewSweeper(
	uow repository.UnitOfWork,
	gen handler.Regenerator,
	interval time.Duration,
	logger *slog.Logger,
) (*Sweeper, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	return &Sweeper{
		uow:       uow,
		gen:       gen,
		interval:  interval,
		batchSize: DefaultBatchSize,
		logger:    logger.With("component", "sweeper"),
	}, nil
}

// Run sweeps once immediately and then every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// SweepOnce regenerates every user page by page and returns how many users
// were processed. A failure for one user is logged and skipped.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	start := time.Now()
	processed, failed := 0, 0
	for offset := 0; ; offset += s.batchSize {
		ids, err := s.page(ctx, offset)
		if err != nil {
			return processed, err
		}
		for _, id := range ids {
			if ctx.Err() != nil {
				return processed, ctx.Err()
			}
			if err := s.gen.Regenerate(ctx, id); err != nil {
				failed++
				s.logger.Warn("regeneration failed", "userID", id, "error", err)
				continue
			}
			processed++
		}
		if len(ids) < s.batchSize {
			break
		}
	}
	s.logger.Info("sweep complete",
		"users", processed,
		"failed", failed,
		"took", time.Since(start))
	return processed, nil
}

func (s *Sweeper) page(ctx context.Context, offset int) (ids []uuid.UUID, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		ids, err = repo.ListIDs(ctx, offset, s.batchSize)
		return err
	})
	return
}
