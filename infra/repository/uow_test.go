package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/finhealth/pkg/repository"
	"github.com/amirasaad/finhealth/pkg/repository/budget"
	"github.com/amirasaad/finhealth/pkg/repository/goal"
	"github.com/amirasaad/finhealth/pkg/repository/insight"
	"github.com/amirasaad/finhealth/pkg/repository/transaction"
	"github.com/amirasaad/finhealth/pkg/repository/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() }) //nolint:errcheck
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		userRepo, err := repository.Get[user.Repository](txUow)
		require.NoError(err)
		assert.NotNil(userRepo)

		txRepo, err := repository.Get[transaction.Repository](txUow)
		require.NoError(err)
		assert.NotNil(txRepo)

		budgetRepo, err := repository.Get[budget.Repository](txUow)
		require.NoError(err)
		assert.NotNil(budgetRepo)

		goalRepo, err := repository.Get[goal.Repository](txUow)
		require.NoError(err)
		assert.NotNil(goalRepo)

		repoAny, err := txUow.GetRepository((*insight.Repository)(nil))
		require.NoError(err)
		_, ok := repoAny.(insight.Repository)
		assert.True(ok)
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_RepositoryUsesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE email = $1`)).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	var exists bool
	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		repo, err := repository.Get[user.Repository](txUow)
		if err != nil {
			return err
		}
		exists, err = repo.ExistsByEmail(context.Background(), "Bob@Example.com")
		return err
	})
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_GetRepositoryOutsideTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	repo, err := repository.Get[goal.Repository](uow)
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestUoW_UnsupportedRepository(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.GetRepository((*error)(nil))
	assert.Error(t, err)
	_, err = uow.GetRepository(nil)
	assert.Error(t, err)
}
