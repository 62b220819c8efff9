// Package webapi wires the HTTP surface of the finance tracker. Each domain
// has its own route package:
//   - auth: registration, login and profile
//   - transaction: income and expense records and bulk import
//   - budget: monthly category caps and recommendations
//   - goal: savings goals
//   - insight: dashboard, trends, insights and predictions
package webapi

import (
	"errors"
	"strings"

	_ "github.com/amirasaad/finhealth/docs"
	"github.com/amirasaad/finhealth/pkg/app"
	authweb "github.com/amirasaad/finhealth/webapi/auth"
	budgetweb "github.com/amirasaad/finhealth/webapi/budget"
	"github.com/amirasaad/finhealth/webapi/common"
	goalweb "github.com/amirasaad/finhealth/webapi/goal"
	insightweb "github.com/amirasaad/finhealth/webapi/insight"
	transactionweb "github.com/amirasaad/finhealth/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: common.ErrorHandler,
	})
	hideErrors := cfg.IsProduction()
	fiberApp.Use(func(c *fiber.Ctx) error {
		c.Locals(common.LocalHideErrors, hideErrors)
		return c.Next()
	})

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Behind a proxy the first X-Forwarded-For hop identifies the client.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	if !cfg.IsTest() {
		fiberApp.Use(logger.New())
	}

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	var router fiber.Router = fiberApp
	if base := strings.TrimRight(cfg.Server.BasePath, "/"); base != "" {
		router = fiberApp.Group(base)
	}

	authweb.Routes(router, a.AuthService, a.UserService, cfg)
	transactionweb.Routes(router, a.TransactionService, a.AuthService, cfg)
	budgetweb.Routes(router, a.BudgetService, a.AuthService, cfg)
	goalweb.Routes(router, a.GoalService, a.AuthService, cfg)
	insightweb.Routes(router, a.InsightService, a.AuthService, cfg)
	return fiberApp
}
