package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/finhealth/pkg/currency"
	"github.com/amirasaad/finhealth/pkg/domain"
	"github.com/amirasaad/finhealth/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = fmt.Errorf("user not found: %w", domain.ErrNotFound)
	// ErrEmailTaken is returned when registering with an email that already has an account.
	ErrEmailTaken = fmt.Errorf("email already registered: %w", domain.ErrAlreadyExists)
	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
)

// Preferences holds per-user display settings.
type Preferences struct {
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// DefaultPreferences returns the preferences given to new users.
func DefaultPreferences() Preferences {
	return Preferences{Currency: "USD", Theme: "light", Language: "en"}
}

// Validate rejects a currency outside the supported display currencies.
func (p Preferences) Validate() error {
	if p.Currency != "" && !currency.IsSupported(p.Currency) {
		return fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, p.Currency)
	}
	return nil
}

// Merge overlays the non-empty fields of p onto base.
func (p Preferences) Merge(base Preferences) Preferences {
	if p.Currency != "" {
		base.Currency = strings.ToUpper(p.Currency)
	}
	if p.Theme != "" {
		base.Theme = p.Theme
	}
	if p.Language != "" {
		base.Language = p.Language
	}
	return base
}

// User represents a registered account.
type User struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"-"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// New creates a User with a hashed password and default preferences.
func New(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrValidation)
	}
	if !utils.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Password:    hashed,
		Preferences: DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
