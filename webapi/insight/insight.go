package insight

import (
	"strconv"

	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/middleware"
	authsvc "github.com/amirasaad/finhealth/pkg/service/auth"
	insightsvc "github.com/amirasaad/finhealth/pkg/service/insight"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the read-side aggregate endpoints. Every route requires a token.
//
// Routes:
//   - GET /dashboard          : Current month totals.
//   - GET /trends             : Six months of expenses per month and category.
//   - GET /insights           : Ten most recent insights.
//   - PUT /insights/:id/read  : Mark an insight as read.
//   - GET /predictions?days=N : Upcoming spending predictions.
func Routes(
	router fiber.Router,
	svc *insightsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	router.Get("/dashboard", protected, Dashboard(svc, authSvc))
	router.Get("/trends", protected, Trends(svc, authSvc))
	router.Get("/insights", protected, Insights(svc, authSvc))
	router.Put("/insights/:id/read", protected, MarkRead(svc, authSvc))
	router.Get("/predictions", protected, Predictions(svc, authSvc))
}

// Dashboard summarizes the current month.
// @Summary Dashboard
// @Description Income, expenses, savings rate, budget alert and spending by category for the current month (UTC).
// @Tags insights
// @Produce json
// @Success 200 {object} common.Response{data=dto.Dashboard}
// @Failure 401 {object} common.ProblemDetails
// @Router /dashboard [get]
// @Security BearerAuth
func Dashboard(svc *insightsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		d, err := svc.Dashboard(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build dashboard", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Dashboard fetched", d)
	}
}

// Trends returns monthly expense totals per category.
// @Summary Trends
// @Description One row per month with expenses, oldest first; each category is a field of the row.
// @Tags insights
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /trends [get]
// @Security BearerAuth
func Trends(svc *insightsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		rows, err := svc.Trends(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build trends", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trends fetched", rows)
	}
}

// @Summary Insights
// @Tags insights
// @Produce json
// @Success 200 {object} common.Response{data=[]dto.InsightRead}
// @Router /insights [get]
// @Security BearerAuth
func Insights(svc *insightsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		list, err := svc.Insights(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list insights", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Insights fetched", list)
	}
}

// @Summary Mark insight read
// @Tags insights
// @Produce json
// @Param id path string true "Insight ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /insights/{id}/read [put]
// @Security BearerAuth
func MarkRead(svc *insightsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.MarkRead(c.UserContext(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Insight not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Insight marked as read", nil)
	}
}

// @Summary Spending predictions
// @Tags insights
// @Produce json
// @Param days query int false "Maximum rows, default 30"
// @Success 200 {object} common.Response{data=[]dto.PredictionRead}
// @Failure 400 {object} common.ProblemDetails
// @Router /predictions [get]
// @Security BearerAuth
func Predictions(svc *insightsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		days := insightsvc.DefaultPredictionDays
		if raw := c.Query("days"); raw != "" {
			days, err = strconv.Atoi(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid query", nil, "days must be a positive integer", fiber.StatusBadRequest)
			}
		}
		preds, err := svc.Predictions(c.UserContext(), userID, days)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list predictions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Predictions fetched", preds)
	}
}
