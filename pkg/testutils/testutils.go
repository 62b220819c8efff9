// Package testutils builds migrated SQLite databases and seed data for tests.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/finhealth/infra"
	infrarepo "github.com/amirasaad/finhealth/infra/repository"
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/domain/user"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository"
	userrepo "github.com/amirasaad/finhealth/pkg/repository/user"
	"github.com/amirasaad/finhealth/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every user created by CreateUser.
const TestPassword = "password123"

func init() {
	utils.PasswordCost = bcrypt.MinCost
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestDB opens a migrated SQLite database in a temp dir that is removed
// when the test ends.
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	cfg := &config.DB{
		Driver:          "sqlite",
		Url:             filepath.Join(tb.TempDir(), "test.db") + "?_busy_timeout=5000",
		MaxOpenConns:    4,
		MaxIdleConns:    4,
		ConnMaxLifetime: time.Hour,
	}
	db, err := infra.NewDBConnection(cfg, "test")
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := infra.RunMigrations(db, cfg.Driver); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestUoW returns a unit of work over a fresh test database.
func NewTestUoW(tb testing.TB) *infrarepo.UoW {
	tb.Helper()
	return infrarepo.NewUoW(NewTestDB(tb))
}

// CreateUser inserts a user with a random email and TestPassword.
func CreateUser(tb testing.TB, uow repository.UnitOfWork) *dto.UserRead {
	tb.Helper()
	u, err := user.New("Test User", "user_"+uuid.NewString()[:8]+"@example.com", TestPassword)
	if err != nil {
		tb.Fatalf("new user: %v", err)
	}
	ctx := context.Background()
	repo, err := repository.Get[userrepo.Repository](uow)
	if err != nil {
		tb.Fatalf("user repository: %v", err)
	}
	if err := repo.Create(ctx, &dto.UserCreate{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Password:    u.Password,
		Preferences: u.Preferences,
	}); err != nil {
		tb.Fatalf("create user: %v", err)
	}
	read, err := repo.Get(ctx, u.ID)
	if err != nil {
		tb.Fatalf("read user: %v", err)
	}
	return read
}
