package budget

import (
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/shopspring/decimal"
)

// CreateInput is the body of POST /budgets.
type CreateInput struct {
	Category string           `json:"category" validate:"required,max=50"`
	Limit    *decimal.Decimal `json:"limit" validate:"required"`
	Spent    *decimal.Decimal `json:"spent"`
	Month    *common.Date     `json:"month"`
}

func (in *CreateInput) toDTO() *dto.BudgetCreate {
	c := &dto.BudgetCreate{Category: in.Category}
	if in.Limit != nil {
		c.Limit = *in.Limit
	}
	if in.Spent != nil {
		c.Spent = *in.Spent
	}
	if m := in.Month.Ptr(); m != nil {
		c.Month = *m
	}
	return c
}

// UpdateInput is the body of PUT /budgets/:id. Omitted fields are kept.
type UpdateInput struct {
	Category *string          `json:"category" validate:"omitempty,min=1,max=50"`
	Limit    *decimal.Decimal `json:"limit"`
	Spent    *decimal.Decimal `json:"spent"`
	Month    *common.Date     `json:"month"`
}

func (in *UpdateInput) toDTO() *dto.BudgetUpdate {
	return &dto.BudgetUpdate{
		Category: in.Category,
		Limit:    in.Limit,
		Spent:    in.Spent,
		Month:    in.Month.Ptr(),
	}
}
