package auth

import "github.com/amirasaad/finhealth/pkg/domain/user"

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// ProfileUpdateInput is the body of PUT /auth/profile. Omitted fields are kept.
type ProfileUpdateInput struct {
	Name        *string           `json:"name" validate:"omitempty,min=1,max=100"`
	Preferences *user.Preferences `json:"preferences"`
}
