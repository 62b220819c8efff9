package dto

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmount is a per-category expense total.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Dashboard is the current-month summary for one user.
type Dashboard struct {
	TotalIncome        decimal.Decimal  `json:"totalIncome"`
	TotalExpenses      decimal.Decimal  `json:"totalExpenses"`
	TotalSpent         decimal.Decimal  `json:"totalSpent"`
	TotalSaved         decimal.Decimal  `json:"totalSaved"`
	SavingsRate        string           `json:"savingsRate"`
	BudgetAlert        string           `json:"budgetAlert"`
	SpendingByCategory []CategoryAmount `json:"spendingByCategory"`
	TransactionCount   int              `json:"transactionCount"`
}

// TrendRow is one month of expense totals keyed by category. It serializes
// flat: {"month": "2024-04", "Food": 500, "Rent": 1200}. A category named
// "month" goes out under MonthCategoryKey so it cannot hide the month.
type TrendRow struct {
	Month      string
	Categories map[string]decimal.Decimal
}

// Total sums every category of the month.
func (r TrendRow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range r.Categories {
		total = total.Add(v)
	}
	return total
}

// MonthCategoryKey is the serialized key of a category literally named "month".
const MonthCategoryKey = "month (category)"

func (r TrendRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Categories)+1)
	for k, v := range r.Categories {
		if k == "month" {
			k = MonthCategoryKey
		}
		out[k] = v
	}
	out["month"] = r.Month
	return json.Marshal(out)
}

func (r *TrendRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Categories = make(map[string]decimal.Decimal, len(raw))
	for k, v := range raw {
		if k == "month" {
			if err := json.Unmarshal(v, &r.Month); err != nil {
				return fmt.Errorf("trend month: %w", err)
			}
			continue
		}
		var amount decimal.Decimal
		if err := json.Unmarshal(v, &amount); err != nil {
			return fmt.Errorf("trend category %q: %w", k, err)
		}
		if k == MonthCategoryKey {
			k = "month"
		}
		r.Categories[k] = amount
	}
	return nil
}

// CategoryNames returns the row's categories in alphabetical order.
func (r TrendRow) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for k := range r.Categories {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// BudgetRecommendation suggests a cap for one category from recent spending.
type BudgetRecommendation struct {
	Category          string          `json:"category"`
	CurrentSpending   decimal.Decimal `json:"currentSpending"`
	Percentage        string          `json:"percentage"`
	RecommendedBudget decimal.Decimal `json:"recommendedBudget"`
}
