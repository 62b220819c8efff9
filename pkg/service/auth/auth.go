package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/domain/user"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository"
	repouser "github.com/amirasaad/finhealth/pkg/repository/user"
	"github.com/amirasaad/finhealth/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// unknownEmailHash is compared against when the email is not registered so
// that a miss costs the same bcrypt work as a wrong password.
func unknownEmailHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("finhealth-unknown-user")
	})
	return dummyHash
}

type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates a JWT auth service.
func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Register creates the user and signs a token for it.
func (s *Service) Register(
	ctx context.Context,
	name, email, password string,
) (*dto.AuthResult, error) {
	log := s.logger.With("context", "Register", "email", email)
	log.Debug("Register called")

	u, err := user.New(name, email, password)
	if err != nil {
		log.Warn("Register rejected", "error", err)
		return nil, err
	}

	var created *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if exists {
			return user.ErrEmailTaken
		}
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Password:    u.Password,
			Preferences: u.Preferences,
		}); err != nil {
			return err
		}
		created, err = repo.Get(ctx, u.ID)
		return err
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}

	token, err := s.GenerateToken(ctx, created)
	if err != nil {
		return nil, err
	}
	log.Info("Register successful", "userID", created.ID)
	return &dto.AuthResult{Token: token, User: created.Public()}, nil
}

// Login checks the credentials and signs a fresh token. Unknown emails and
// wrong passwords both yield user.ErrInvalidCredentials.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*dto.AuthResult, error) {
	log := s.logger.With("context", "Login", "email", email)
	log.Debug("Login called")

	var u *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		if errors.Is(err, user.ErrUserNotFound) {
			_ = utils.CheckPasswordHash(password, unknownEmailHash())
			return user.ErrInvalidCredentials
		}
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			return user.ErrInvalidCredentials
		}
		return nil
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, err
	}

	token, err := s.GenerateToken(ctx, u)
	if err != nil {
		return nil, err
	}
	log.Info("Login successful", "userID", u.ID)
	return &dto.AuthResult{Token: token, User: u.Public()}, nil
}

// Refresh reissues a token for an authenticated user that still exists.
func (s *Service) Refresh(
	ctx context.Context,
	userID uuid.UUID,
) (string, error) {
	log := s.logger.With("context", "Refresh", "userID", userID)
	var u *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("Refresh failed", "error", err)
		return "", err
	}
	return s.GenerateToken(ctx, u)
}

// GenerateToken signs an HS256 token carrying id, email and exp.
func (s *Service) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (string, error) {
	log := s.logger.With("userID", u.ID)
	log.Debug("GenerateToken called")
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = u.ID.String()
	claims["email"] = u.Email
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// GetCurrentUserID extracts the user id from a token verified by the middleware.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	log := s.logger.With("context", "GetCurrentUserID")
	if token == nil {
		log.Error("GetCurrentUserID failed", "error", "missing token")
		return uuid.Nil, user.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		log.Error("GetCurrentUserID failed", "error", "unexpected claims type")
		return uuid.Nil, user.ErrInvalidCredentials
	}
	raw, ok := claims["id"].(string)
	if !ok {
		log.Error("GetCurrentUserID failed", "error", "missing id claim")
		return uuid.Nil, user.ErrInvalidCredentials
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		log.Error("GetCurrentUserID failed", "error", err)
		return uuid.Nil, user.ErrInvalidCredentials
	}
	return userID, nil
}
