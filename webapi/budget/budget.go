package budget

import (
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/middleware"
	authsvc "github.com/amirasaad/finhealth/pkg/service/auth"
	budgetsvc "github.com/amirasaad/finhealth/pkg/service/budget"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the budget endpoints. Every route requires a token.
func Routes(
	router fiber.Router,
	svc *budgetsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	g := router.Group("/budgets", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/", List(svc, authSvc))
	g.Post("/", Create(svc, authSvc))
	g.Get("/recommendations", Recommendations(svc, authSvc))
	g.Get("/:id", Get(svc, authSvc))
	g.Put("/:id", Update(svc, authSvc))
	g.Delete("/:id", Delete(svc, authSvc))
}

// List returns the caller's budgets, latest month first.
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param category query string false "Category equals"
// @Success 200 {object} common.Response{data=[]dto.BudgetRead}
// @Failure 401 {object} common.ProblemDetails
// @Router /budgets [get]
// @Security BearerAuth
func List(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		budgets, err := svc.List(c.UserContext(), userID, dto.BudgetFilter{Category: c.Query("category")})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets fetched", budgets)
	}
}

// Create adds a monthly budget.
// @Summary Create budget
// @Description Month defaults to the current month and is normalized to its first day.
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body CreateInput true "Budget"
// @Success 201 {object} common.Response{data=dto.BudgetRead}
// @Failure 400 {object} common.ProblemDetails
// @Router /budgets [post]
// @Security BearerAuth
func Create(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}
		b, err := svc.Create(c.UserContext(), userID, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Budget created", b)
	}
}

// Recommendations suggests caps from recent spending.
// @Summary Budget recommendations
// @Tags budgets
// @Produce json
// @Success 200 {object} common.Response{data=[]dto.BudgetRecommendation}
// @Failure 401 {object} common.ProblemDetails
// @Router /budgets/recommendations [get]
// @Security BearerAuth
func Recommendations(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		recs, err := svc.Recommendations(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build recommendations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Recommendations fetched", recs)
	}
}

// @Summary Get budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} common.Response{data=dto.BudgetRead}
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [get]
// @Security BearerAuth
func Get(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return err
		}
		b, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Budget not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget fetched", b)
	}
}

// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body UpdateInput true "Fields to change"
// @Success 200 {object} common.Response{data=dto.BudgetRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [put]
// @Security BearerAuth
func Update(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[UpdateInput](c)
		if input == nil {
			return err
		}
		b, err := svc.Update(c.UserContext(), userID, id, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget updated", b)
	}
}

// @Summary Delete budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [delete]
// @Security BearerAuth
func Delete(svc *budgetsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget deleted", nil)
	}
}
