// Package middleware provides the Fiber middleware shared by protected routes.
package middleware

import (
	"errors"

	"github.com/amirasaad/finhealth/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected verifies the bearer token and stores it under the "user" local.
// Missing, malformed or expired tokens are answered with 401.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ContextKey:   "user",
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	detail := "invalid or expired token"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		detail = "missing or malformed token"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    "Unauthorized",
		"status":   fiber.StatusUnauthorized,
		"detail":   detail,
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}
