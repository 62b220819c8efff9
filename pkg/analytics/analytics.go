// Package analytics computes dashboard figures, trends, insights and
// forecasts from a user's records. Every function is pure; callers load the
// records and persist the results.
package analytics

import (
	"sort"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals returns the income and expense sums of txs.
func Totals(txs []*dto.TransactionRead) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case transaction.Income:
			income = income.Add(t.Amount)
		case transaction.Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// ByCategory sums expenses per category, largest first. Ties sort by name.
func ByCategory(txs []*dto.TransactionRead) []dto.CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != transaction.Expense {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	out := make([]dto.CategoryAmount, 0, len(sums))
	for c, a := range sums {
		out = append(out, dto.CategoryAmount{Category: c, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// SavingsRate is (income - expense) / income * 100 with two decimals, "0.00"
// when there is no income.
func SavingsRate(income, expense decimal.Decimal) string {
	if !income.IsPositive() {
		return decimal.Zero.StringFixed(2)
	}
	return income.Sub(expense).Div(income).Mul(hundred).StringFixed(2)
}

// BudgetAlert is the share of budgets whose spent exceeds their limit, as a
// percentage with one decimal. No budgets yields "0.0".
func BudgetAlert(budgets []*dto.BudgetRead) string {
	if len(budgets) == 0 {
		return decimal.Zero.StringFixed(1)
	}
	over := 0
	for _, b := range budgets {
		if b.Spent.GreaterThan(b.Limit) {
			over++
		}
	}
	return decimal.NewFromInt(int64(over)).
		Div(decimal.NewFromInt(int64(len(budgets)))).
		Mul(hundred).
		StringFixed(1)
}

// Summarize builds the dashboard from the current month's transactions and
// all of the user's budgets.
func Summarize(txs []*dto.TransactionRead, budgets []*dto.BudgetRead) *dto.Dashboard {
	income, expense := Totals(txs)
	return &dto.Dashboard{
		TotalIncome:        income,
		TotalExpenses:      expense,
		TotalSpent:         expense,
		TotalSaved:         income.Sub(expense),
		SavingsRate:        SavingsRate(income, expense),
		BudgetAlert:        BudgetAlert(budgets),
		SpendingByCategory: ByCategory(txs),
		TransactionCount:   len(txs),
	}
}

// MonthStart is midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TrendWindowStart is the lower bound of the trends window: six months before now.
func TrendWindowStart(now time.Time) time.Time {
	return now.UTC().AddDate(0, -6, 0)
}

// Trends groups expenses by calendar month (YYYY-MM, UTC) and category. Only
// months with at least one expense appear, oldest first.
func Trends(txs []*dto.TransactionRead) []dto.TrendRow {
	months := make(map[string]map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != transaction.Expense {
			continue
		}
		m := t.Date.UTC().Format("2006-01")
		if months[m] == nil {
			months[m] = make(map[string]decimal.Decimal)
		}
		months[m][t.Category] = months[m][t.Category].Add(t.Amount)
	}
	rows := make([]dto.TrendRow, 0, len(months))
	for m, cats := range months {
		rows = append(rows, dto.TrendRow{Month: m, Categories: cats})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}
