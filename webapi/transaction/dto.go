package transaction

import (
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/shopspring/decimal"
)

// CreateInput is the body of POST /transactions and one row of an import.
type CreateInput struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description" validate:"required,max=255"`
	Category    string           `json:"category" validate:"required,max=50"`
	Type        transaction.Type `json:"type" validate:"omitempty,oneof=income expense"`
	Date        *common.Date     `json:"date"`
	Tags        []string         `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Notes       string           `json:"notes" validate:"max=1000"`
}

func (in *CreateInput) toDTO() *dto.TransactionCreate {
	c := &dto.TransactionCreate{
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Tags:        in.Tags,
		Notes:       in.Notes,
	}
	if in.Amount != nil {
		c.Amount = *in.Amount
	}
	if d := in.Date.Ptr(); d != nil {
		c.Date = *d
	}
	return c
}

// UpdateInput is the body of PUT /transactions/:id. Omitted fields are kept.
type UpdateInput struct {
	Amount      *decimal.Decimal  `json:"amount"`
	Description *string           `json:"description" validate:"omitempty,min=1,max=255"`
	Category    *string           `json:"category" validate:"omitempty,min=1,max=50"`
	Type        *transaction.Type `json:"type" validate:"omitempty,oneof=income expense"`
	Date        *common.Date      `json:"date"`
	Tags        *[]string         `json:"tags"`
	Notes       *string           `json:"notes" validate:"omitempty,max=1000"`
}

func (in *UpdateInput) toDTO() *dto.TransactionUpdate {
	return &dto.TransactionUpdate{
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Date:        in.Date.Ptr(),
		Tags:        in.Tags,
		Notes:       in.Notes,
	}
}

// ListQuery holds the GET /transactions query string.
type ListQuery struct {
	Category  string `query:"category"`
	Type      string `query:"type"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// RowError reports one rejected import row.
type RowError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}
