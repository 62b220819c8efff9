package goal

import (
	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/shopspring/decimal"
)

// CreateInput is the body of POST /goals.
type CreateInput struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Description  string           `json:"description" validate:"max=500"`
	TargetAmount *decimal.Decimal `json:"targetAmount" validate:"required"`
	SavedAmount  *decimal.Decimal `json:"savedAmount"`
	Deadline     *common.Date     `json:"deadline" validate:"required"`
	Priority     goal.Priority    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status       goal.Status      `json:"status" validate:"omitempty,oneof=active completed abandoned"`
}

func (in *CreateInput) toDTO() *dto.GoalCreate {
	c := &dto.GoalCreate{
		Name:        in.Name,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
	}
	if in.TargetAmount != nil {
		c.TargetAmount = *in.TargetAmount
	}
	if in.SavedAmount != nil {
		c.SavedAmount = *in.SavedAmount
	}
	if d := in.Deadline.Ptr(); d != nil {
		c.Deadline = *d
	}
	return c
}

// UpdateInput is the body of PUT /goals/:id. Omitted fields are kept.
type UpdateInput struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description" validate:"omitempty,max=500"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	SavedAmount  *decimal.Decimal `json:"savedAmount"`
	Deadline     *common.Date     `json:"deadline"`
	Priority     *goal.Priority   `json:"priority"`
	Status       *goal.Status     `json:"status"`
}

func (in *UpdateInput) toDTO() *dto.GoalUpdate {
	return &dto.GoalUpdate{
		Name:         in.Name,
		Description:  in.Description,
		TargetAmount: in.TargetAmount,
		SavedAmount:  in.SavedAmount,
		Deadline:     in.Deadline.Ptr(),
		Priority:     in.Priority,
		Status:       in.Status,
	}
}
