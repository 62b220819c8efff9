// Package transaction provides the income and expense record operations.
// Every mutation emits a TransactionsChanged event after its unit of work
// commits.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/events"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/eventbus"
	"github.com/amirasaad/finhealth/pkg/repository"
	txrepo "github.com/amirasaad/finhealth/pkg/repository/transaction"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
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

// NormalizePage applies the default and maximum page size and clamps a
// negative offset to zero.
func NormalizePage(filter dto.TransactionFilter) dto.TransactionFilter {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) (*dto.TransactionPage, error) {
	filter = NormalizePage(filter)
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, transaction.ErrInvalidType
	}
	page := &dto.TransactionPage{Limit: filter.Limit, Offset: filter.Offset}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		page.Items, page.Total, err = repo.List(ctx, userID, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List transactions failed", "userID", userID, "error", err)
		return nil, err
	}
	return page, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (tx *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		tx, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Create validates in, applies the creation defaults and stores the record.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	log := s.logger.With("context", "CreateTransaction", "userID", userID)
	create, err := newCreate(userID, in, time.Now().UTC())
	if err != nil {
		log.Warn("invalid transaction", "error", err)
		return nil, err
	}

	var created *dto.TransactionRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, create); err != nil {
			return err
		}
		created, err = repo.Get(ctx, userID, create.ID)
		return err
	})
	if err != nil {
		log.Error("CreateTransaction failed", "error", err)
		return nil, err
	}
	s.emit(ctx, events.NewTransactionsChanged(userID, events.ActionCreated, 1))
	log.Info("transaction created", "transactionID", created.ID)
	return created, nil
}

// Update merges the supplied fields into the caller's transaction. Only the
// type is checked; the merged record is not revalidated.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.TransactionUpdate,
) (*dto.TransactionRead, error) {
	if update.Type != nil && !update.Type.Valid() {
		return nil, transaction.ErrInvalidType
	}
	var updated *dto.TransactionRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
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
		s.logger.Error("UpdateTransaction failed", "userID", userID, "transactionID", id, "error", err)
		return nil, err
	}
	s.emit(ctx, events.NewTransactionsChanged(userID, events.ActionUpdated, 1))
	return updated, nil
}

func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, userID, id)
	})
	if err != nil {
		s.logger.Error("DeleteTransaction failed", "userID", userID, "transactionID", id, "error", err)
		return err
	}
	s.emit(ctx, events.NewTransactionsChanged(userID, events.ActionDeleted, 1))
	return nil
}

// Import stores every row or none. All rows are validated first; failures
// are reported together as a *transaction.ImportError.
func (s *Service) Import(
	ctx context.Context,
	userID uuid.UUID,
	rows []*dto.TransactionCreate,
) ([]*dto.TransactionRead, error) {
	log := s.logger.With("context", "ImportTransactions", "userID", userID, "rows", len(rows))
	now := time.Now().UTC()
	creates := make([]*dto.TransactionCreate, 0, len(rows))
	invalid := make(map[int]error)
	for i, row := range rows {
		c, err := newCreate(userID, row, now)
		if err != nil {
			invalid[i] = err
			continue
		}
		creates = append(creates, c)
	}
	if len(invalid) > 0 {
		err := &transaction.ImportError{Rows: invalid}
		log.Warn("import rejected", "error", err)
		return nil, err
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[txrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.CreateBatch(ctx, creates)
	})
	if err != nil {
		log.Error("import failed", "error", err)
		return nil, err
	}

	out := make([]*dto.TransactionRead, 0, len(creates))
	for _, c := range creates {
		out = append(out, toRead(c))
	}
	if len(out) > 0 {
		s.emit(ctx, events.NewTransactionsChanged(userID, events.ActionImported, len(out)))
	}
	log.Info("transactions imported", "count", len(out))
	return out, nil
}

func (s *Service) emit(ctx context.Context, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("failed to emit event", "type", e.Type(), "error", err)
	}
}

func newCreate(userID uuid.UUID, in *dto.TransactionCreate, now time.Time) (*dto.TransactionCreate, error) {
	if in == nil {
		return nil, transaction.ErrMissingFields
	}
	var date *time.Time
	if !in.Date.IsZero() {
		date = &in.Date
	}
	t, err := transaction.New(userID, in.Amount, in.Description, in.Category, in.Type, date, in.Tags, in.Notes)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionCreate{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Type:        t.Type,
		Date:        t.Date,
		Tags:        t.Tags,
		Notes:       t.Notes,
		CreatedAt:   now,
	}, nil
}

func toRead(c *dto.TransactionCreate) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:          c.ID,
		UserID:      c.UserID,
		Amount:      c.Amount,
		Description: c.Description,
		Category:    c.Category,
		Type:        c.Type,
		Date:        c.Date,
		Tags:        c.Tags,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.CreatedAt,
	}
}
