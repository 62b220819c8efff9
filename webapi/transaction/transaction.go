package transaction

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/middleware"
	authsvc "github.com/amirasaad/finhealth/pkg/service/auth"
	txsvc "github.com/amirasaad/finhealth/pkg/service/transaction"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the transaction endpoints. Every route requires a token.
//
// Routes:
//   - GET    /transactions        : Filtered, paginated listing.
//   - POST   /transactions        : Record one transaction.
//   - POST   /transactions/import : Record a batch, all or nothing.
//   - GET    /transactions/:id    : One transaction.
//   - PUT    /transactions/:id    : Change supplied fields.
//   - DELETE /transactions/:id    : Remove a transaction.
func Routes(
	router fiber.Router,
	svc *txsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	g := router.Group("/transactions", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/", List(svc, authSvc))
	g.Post("/", Create(svc, authSvc))
	g.Post("/import", Import(svc, authSvc))
	g.Get("/:id", Get(svc, authSvc))
	g.Put("/:id", Update(svc, authSvc))
	g.Delete("/:id", Delete(svc, authSvc))
}

// List returns the caller's transactions, newest first.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param category query string false "Category equals"
// @Param type query string false "income or expense"
// @Param startDate query string false "Dated on or after (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "Dated on or before (YYYY-MM-DD or RFC 3339)"
// @Param limit query int false "Page size, default 20, max 100"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} common.Response{data=dto.TransactionPage}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security BearerAuth
func List(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		var q ListQuery
		if err := c.QueryParser(&q); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", nil, err.Error(), fiber.StatusBadRequest)
		}
		filter := dto.TransactionFilter{
			Category: q.Category,
			Type:     transaction.Type(q.Type),
			Limit:    q.Limit,
			Offset:   q.Offset,
		}
		if q.StartDate != "" {
			t, err := common.ParseDate(q.StartDate)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid query", nil, err.Error(), fiber.StatusBadRequest)
			}
			filter.StartDate = &t
		}
		if q.EndDate != "" {
			t, err := common.ParseDate(q.EndDate)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid query", nil, err.Error(), fiber.StatusBadRequest)
			}
			filter.EndDate = &t
		}
		page, err := svc.List(c.UserContext(), userID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", page)
	}
}

// Create records a transaction.
// @Summary Create transaction
// @Description Type defaults to expense and date to now.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateInput true "Transaction"
// @Success 201 {object} common.Response{data=dto.TransactionRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security BearerAuth
func Create(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}
		tx, err := svc.Create(c.UserContext(), userID, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", tx)
	}
}

type importBody struct {
	Transactions json.RawMessage `json:"transactions"`
}

// Import records a batch of transactions in one database transaction.
// @Summary Import transactions
// @Description Every row is validated first; any invalid row rejects the whole batch and the response lists the failing indexes.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body object true "{\"transactions\": [CreateInput]}"
// @Success 201 {object} common.Response{data=[]dto.TransactionRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /transactions/import [post]
// @Security BearerAuth
func Import(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		var body importBody
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
		}
		raw := bytes.TrimSpace(body.Transactions)
		if len(raw) == 0 || raw[0] != '[' {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, "transactions must be an array", fiber.StatusBadRequest)
		}
		var inputs []CreateInput
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
		}
		rows := make([]*dto.TransactionCreate, 0, len(inputs))
		for i := range inputs {
			rows = append(rows, inputs[i].toDTO())
		}

		created, err := svc.Import(c.UserContext(), userID, rows)
		var importErr *transaction.ImportError
		if errors.As(err, &importErr) {
			rowErrors := make([]RowError, 0, len(importErr.Rows))
			for _, i := range importErr.Indexes() {
				rowErrors = append(rowErrors, RowError{Index: i, Error: importErr.Rows[i].Error()})
			}
			return common.ProblemDetailsJSON(c, "Import rejected", err, "one or more rows are invalid", rowErrors)
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to import transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transactions imported", created)
	}
}

// Get returns one transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response{data=dto.TransactionRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security BearerAuth
func Get(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return err
		}
		tx, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", tx)
	}
}

// Update changes the supplied fields of a transaction.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateInput true "Fields to change"
// @Success 200 {object} common.Response{data=dto.TransactionRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [put]
// @Security BearerAuth
func Update(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
		tx, err := svc.Update(c.UserContext(), userID, id, input.toDTO())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", tx)
	}
}

// Delete removes a transaction.
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func Delete(svc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", nil)
	}
}
