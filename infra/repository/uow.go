package repository

import (
	"context"
	"fmt"
	"reflect"

	budgetrepo "github.com/amirasaad/finhealth/infra/repository/budget"
	goalrepo "github.com/amirasaad/finhealth/infra/repository/goal"
	insightrepo "github.com/amirasaad/finhealth/infra/repository/insight"
	txrepo "github.com/amirasaad/finhealth/infra/repository/transaction"
	userrepo "github.com/amirasaad/finhealth/infra/repository/user"
	"github.com/amirasaad/finhealth/pkg/repository"
	"github.com/amirasaad/finhealth/pkg/repository/budget"
	"github.com/amirasaad/finhealth/pkg/repository/goal"
	"github.com/amirasaad/finhealth/pkg/repository/insight"
	"github.com/amirasaad/finhealth/pkg/repository/transaction"
	"github.com/amirasaad/finhealth/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*user.Repository)(nil)).Elem():        func(db *gorm.DB) any { return userrepo.New(db) },
			reflect.TypeOf((*transaction.Repository)(nil)).Elem(): func(db *gorm.DB) any { return txrepo.New(db) },
			reflect.TypeOf((*budget.Repository)(nil)).Elem():      func(db *gorm.DB) any { return budgetrepo.New(db) },
			reflect.TypeOf((*goal.Repository)(nil)).Elem():        func(db *gorm.DB) any { return goalrepo.New(db) },
			reflect.TypeOf((*insight.Repository)(nil)).Elem():     func(db *gorm.DB) any { return insightrepo.New(db) },
		},
	}
}

// Do runs fn in a transaction, providing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository returns the repository registered for repoType, a nil pointer
// to a repository interface such as (*user.Repository)(nil). Outside Do the
// repository runs on the plain connection.
func (u *UoW) GetRepository(repoType any) (any, error) {
	t := reflect.TypeOf(repoType)
	if t == nil {
		return nil, fmt.Errorf("unsupported repository type: nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	constructor, ok := u.repoRegistry[t]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", t)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
