package repository

import (
	"context"
	"fmt"
)

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs fn inside one database transaction; every repository obtained from
// the UnitOfWork passed to fn shares that transaction. Returning an error from
// fn rolls it back.
//
// GetRepository takes a nil pointer to the wanted repository interface:
//
//	repoAny, err := uow.GetRepository((*user.Repository)(nil))
//	repo := repoAny.(user.Repository)
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	GetRepository(repoType any) (any, error)
}

// Get resolves a repository of type T from uow.
func Get[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository((*T)(nil))
	if err != nil {
		return zero, fmt.Errorf("failed to get repository: %w", err)
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("invalid repository type %T", repoAny)
	}
	return repo, nil
}
