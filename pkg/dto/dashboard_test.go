package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendRow_MarshalFlat(t *testing.T) {
	row := dto.TrendRow{Month: "2024-04", Categories: map[string]decimal.Decimal{
		"Food": decimal.NewFromInt(500),
		"Rent": decimal.NewFromInt(1200),
	}}
	raw, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"month":"2024-04","Food":500,"Rent":1200}`, string(raw))
}

func TestTrendRow_CategoryNamedMonth(t *testing.T) {
	row := dto.TrendRow{Month: "2024-04", Categories: map[string]decimal.Decimal{
		"month": decimal.NewFromInt(42),
		"Food":  decimal.NewFromInt(8),
	}}
	raw, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"month":"2024-04","month (category)":42,"Food":8}`, string(raw))

	var back dto.TrendRow
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "2024-04", back.Month)
	assert.True(t, decimal.NewFromInt(42).Equal(back.Categories["month"]))
	assert.True(t, decimal.NewFromInt(50).Equal(back.Total()))
	assert.Equal(t, []string{"Food", "month"}, back.CategoryNames())
}
