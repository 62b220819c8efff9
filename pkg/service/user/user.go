// Package user provides profile reads and updates for the signed-in user.
package user

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finhealth/pkg/domain/user"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository"
	userrepo "github.com/amirasaad/finhealth/pkg/repository/user"
	"github.com/google/uuid"
)

// Service provides profile operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// Profile returns the user's record.
func (s *Service) Profile(
	ctx context.Context,
	userID uuid.UUID,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Error("Profile failed", "userID", userID, "error", err)
		u = nil
	}
	return
}

// UpdateProfile changes the name and merges the supplied preference fields
// over the stored ones.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	name *string,
	prefs *user.Preferences,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "UpdateProfile", "userID", userID)
	if prefs != nil {
		if err := prefs.Validate(); err != nil {
			log.Warn("invalid preferences", "error", err)
			return nil, err
		}
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		update := &dto.UserUpdate{Name: name}
		if prefs != nil {
			merged := prefs.Merge(current.Preferences)
			update.Preferences = &merged
		}
		if err := repo.Update(ctx, userID, update); err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("UpdateProfile failed", "error", err)
		return nil, err
	}
	log.Info("UpdateProfile successful")
	return u, nil
}
