package dto

import (
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/user"
	"github.com/google/uuid"
)

// UserCreate represents the data needed to create a new user.
type UserCreate struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Password    string
	Preferences user.Preferences
}

// UserUpdate represents the data that can be updated for a user.
type UserUpdate struct {
	Name        *string
	Preferences *user.Preferences
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	HashedPassword string           `json:"-"`
	Preferences    user.Preferences `json:"preferences"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// PublicUser is the projection returned by the auth endpoints.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Public strips everything but id, email and name.
func (u *UserRead) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
