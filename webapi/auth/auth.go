package auth

import (
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/middleware"
	authsvc "github.com/amirasaad/finhealth/pkg/service/auth"
	usersvc "github.com/amirasaad/finhealth/pkg/service/user"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the authentication and profile endpoints.
//
// Routes:
//   - POST /auth/register : Create an account and return a token.
//   - POST /auth/login    : Exchange credentials for a token.
//   - POST /auth/refresh  : Reissue a token for the caller.
//   - GET  /auth/profile  : The caller's profile and preferences.
//   - PUT  /auth/profile  : Change the caller's name or preferences.
func Routes(
	router fiber.Router,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	router.Post("/auth/register", Register(authSvc))
	router.Post("/auth/login", Login(authSvc))
	router.Post("/auth/refresh", protected, Refresh(authSvc))
	router.Get("/auth/profile", protected, Profile(authSvc, userSvc))
	router.Put("/auth/profile", protected, UpdateProfile(authSvc, userSvc))
}

// Register creates a user account.
// @Summary Register
// @Description Creates an account and returns a signed token with the public user projection.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "New account"
// @Success 201 {object} common.Response{data=dto.AuthResult}
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		result, err := authSvc.Register(c.UserContext(), input.Name, input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", result)
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response{data=dto.AuthResult}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		result, err := authSvc.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email or password", err, "Email or password is incorrect")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", result)
	}
}

// Refresh reissues a token.
// @Summary Refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /auth/refresh [post]
// @Security BearerAuth
func Refresh(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		token, err := authSvc.Refresh(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Token refresh failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Token refreshed", fiber.Map{"token": token})
	}
}

// Profile returns the caller's profile.
// @Summary Get profile
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response{data=dto.UserRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /auth/profile [get]
// @Security BearerAuth
func Profile(authSvc *authsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		u, err := userSvc.Profile(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Profile not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile fetched", u)
	}
}

// UpdateProfile changes the caller's name or preferences.
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ProfileUpdateInput true "Fields to change"
// @Success 200 {object} common.Response{data=dto.UserRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/profile [put]
// @Security BearerAuth
func UpdateProfile(authSvc *authsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[ProfileUpdateInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.UpdateProfile(c.UserContext(), userID, input.Name, input.Preferences)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update profile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile updated", u)
	}
}
