package goal

import (
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/middleware"
	authsvc "github.com/amirasaad/finhealth/pkg/service/auth"
	goalsvc "github.com/amirasaad/finhealth/pkg/service/goal"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the savings goal endpoints. Every route requires a token.
func Routes(
	router fiber.Router,
	svc *goalsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	g := router.Group("/goals", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/", List(svc, authSvc))
	g.Post("/", Create(svc, authSvc))
	g.Get("/:id", Get(svc, authSvc))
	g.Put("/:id", Update(svc, authSvc))
	g.Delete("/:id", Delete(svc, authSvc))
}

// List returns the caller's goals, nearest deadline first.
// @Summary List goals
// @Tags goals
// @Produce json
// @Param status query string false "active, completed or abandoned"
// @Success 200 {object} common.Response{data=[]dto.GoalRead}
// @Failure 400 {object} common.ProblemDetails
// @Router /goals [get]
// @Security BearerAuth
func List(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		goals, err := svc.List(c.UserContext(), userID, dto.GoalFilter{Status: goal.Status(c.Query("status"))})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list goals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goals fetched", goals)
	}
}

// Create adds a savings goal.
// @Summary Create goal
// @Description Priority defaults to medium and status to active.
// @Tags goals
// @Accept json
// @Produce json
// @Param request body CreateInput true "Goal"
// @Success 201 {object} common.Response{data=dto.GoalRead}
// @Failure 400 {object} common.ProblemDetails
// @Router /goals [post]
// @Security BearerAuth
func Create(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}
		g, err := svc.Create(c.UserContext(), userID, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Goal created", g)
	}
}

// @Summary Get goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} common.Response{data=dto.GoalRead}
// @Failure 404 {object} common.ProblemDetails
// @Router /goals/{id} [get]
// @Security BearerAuth
func Get(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return err
		}
		g, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Goal not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal fetched", g)
	}
}

// @Summary Update goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body UpdateInput true "Fields to change"
// @Success 200 {object} common.Response{data=dto.GoalRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /goals/{id} [put]
// @Security BearerAuth
func Update(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
		g, err := svc.Update(c.UserContext(), userID, id, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal updated", g)
	}
}

// @Summary Delete goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /goals/{id} [delete]
// @Security BearerAuth
func Delete(svc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "Failed to delete goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal deleted", nil)
	}
}
