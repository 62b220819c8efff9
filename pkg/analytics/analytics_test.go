package analytics

import (
	"testing"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/domain/insight"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(amount string, category string, typ transaction.Type, date time.Time) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:       uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Type:     typ,
		Date:     date,
	}
}

func budget(limit, spent string) *dto.BudgetRead {
	return &dto.BudgetRead{
		ID:       uuid.New(),
		Category: "Food",
		Limit:    decimal.RequireFromString(limit),
		Spent:    decimal.RequireFromString(spent),
		Month:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarize_AprilExample(t *testing.T) {
	april := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	txs := []*dto.TransactionRead{
		tx("500", "Food", transaction.Expense, april),
		tx("2000", "Salary", transaction.Income, april),
	}

	d := Summarize(txs, nil)

	assert.True(t, d.TotalIncome.Equal(decimal.NewFromInt(2000)))
	assert.True(t, d.TotalExpenses.Equal(decimal.NewFromInt(500)))
	assert.True(t, d.TotalSpent.Equal(d.TotalExpenses))
	assert.True(t, d.TotalSaved.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "75.00", d.SavingsRate)
	assert.Equal(t, "0.0", d.BudgetAlert)
	assert.Equal(t, 2, d.TransactionCount)
	require.Len(t, d.SpendingByCategory, 1)
	assert.Equal(t, "Food", d.SpendingByCategory[0].Category)
}

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name            string
		income, expense string
		want            string
	}{
		{"no income", "0", "300", "0.00"},
		{"half saved", "1000", "500", "50.00"},
		{"overspent", "100", "150", "-50.00"},
		{"repeating fraction", "3", "1", "66.67"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsRate(decimal.RequireFromString(tt.income), decimal.RequireFromString(tt.expense))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBudgetAlert(t *testing.T) {
	assert.Equal(t, "0.0", BudgetAlert(nil))
	assert.Equal(t, "0.0", BudgetAlert([]*dto.BudgetRead{budget("100", "100")}))
	assert.Equal(t, "33.3", BudgetAlert([]*dto.BudgetRead{
		budget("100", "101"),
		budget("100", "50"),
		budget("100", "0"),
	}))
	assert.Equal(t, "100.0", BudgetAlert([]*dto.BudgetRead{budget("10", "11")}))
}

func TestByCategory_OrdersByAmount(t *testing.T) {
	now := time.Now()
	cats := ByCategory([]*dto.TransactionRead{
		tx("10", "Fun", transaction.Expense, now),
		tx("30", "Rent", transaction.Expense, now),
		tx("15", "Fun", transaction.Expense, now),
		tx("999", "Salary", transaction.Income, now),
	})
	require.Len(t, cats, 2)
	assert.Equal(t, "Rent", cats[0].Category)
	assert.Equal(t, "Fun", cats[1].Category)
	assert.True(t, cats[1].Amount.Equal(decimal.NewFromInt(25)))
}

func TestTrends_GroupsByMonthAndCategory(t *testing.T) {
	txs := []*dto.TransactionRead{
		tx("1200", "Rent", transaction.Expense, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		tx("200", "Food", transaction.Expense, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		tx("300", "Food", transaction.Expense, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
		tx("200", "Food", transaction.Expense, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)),
		tx("5000", "Salary", transaction.Income, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
	}

	rows := Trends(txs)

	require.Len(t, rows, 2, "months without expenses are omitted")
	assert.Equal(t, "2024-03", rows[0].Month)
	assert.Equal(t, "2024-04", rows[1].Month)
	assert.True(t, rows[0].Total().Equal(decimal.NewFromInt(1400)))
	assert.True(t, rows[1].Categories["Food"].Equal(decimal.NewFromInt(500)))
	assert.Equal(t, []string{"Food", "Rent"}, rows[0].CategoryNames())
}

func TestGenerateInsights(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("high spending", func(t *testing.T) {
		out := GenerateInsights(Input{
			UserID: userID,
			Now:    now,
			Transactions: []*dto.TransactionRead{
				tx("1000", "Salary", transaction.Income, now),
				tx("900", "rent", transaction.Expense, now),
			},
		})
		require.Len(t, out, 2)
		assert.Equal(t, "High Spending Alert", out[0].Title)
		assert.Equal(t, insight.KindWarning, out[0].Type)
		assert.Equal(t, insight.PriorityHigh, out[0].Priority)
		assert.Contains(t, out[0].Description, "90.0%")
		assert.Equal(t, "Review Rent Spending", out[1].Title)
		for _, in := range out {
			assert.Equal(t, userID, in.UserID)
			assert.Equal(t, insight.SourceGenerator, in.Source)
		}
	})

	t.Run("good savings", func(t *testing.T) {
		out := GenerateInsights(Input{
			UserID: userID,
			Now:    now,
			Transactions: []*dto.TransactionRead{
				tx("1000", "Salary", transaction.Income, now),
				tx("100", "Food", transaction.Expense, now),
			},
		})
		require.NotEmpty(t, out)
		assert.Equal(t, "Great Savings Rate!", out[0].Title)
		assert.Equal(t, insight.KindAchievement, out[0].Type)
	})

	t.Run("between thresholds and no income", func(t *testing.T) {
		out := GenerateInsights(Input{
			UserID: userID,
			Now:    now,
			Transactions: []*dto.TransactionRead{
				tx("1000", "Salary", transaction.Income, now),
				tx("700", "Food", transaction.Expense, now),
			},
		})
		require.Len(t, out, 1)
		assert.Equal(t, insight.KindTip, out[0].Type)

		assert.Empty(t, GenerateInsights(Input{UserID: userID, Now: now}))
	})

	t.Run("budgets and goals", func(t *testing.T) {
		out := GenerateInsights(Input{
			UserID:  userID,
			Now:     now,
			Budgets: []*dto.BudgetRead{budget("100", "150"), budget("100", "20")},
			Goals: []*dto.GoalRead{
				{ID: uuid.New(), Name: "Trip", TargetAmount: decimal.NewFromInt(500), SavedAmount: decimal.NewFromInt(100),
					Deadline: now.AddDate(0, -1, 0), Status: goal.StatusActive},
				{ID: uuid.New(), Name: "Done", TargetAmount: decimal.NewFromInt(500), SavedAmount: decimal.NewFromInt(500),
					Deadline: now.AddDate(0, -1, 0), Status: goal.StatusActive},
				{ID: uuid.New(), Name: "Later", TargetAmount: decimal.NewFromInt(500),
					Deadline: now.AddDate(0, 1, 0), Status: goal.StatusActive},
			},
		})
		require.Len(t, out, 2)
		assert.Equal(t, "Food Budget Exceeded", out[0].Title)
		assert.Equal(t, insight.KindGoal, out[1].Type)
		assert.Equal(t, "Goal Deadline Passed: Trip", out[1].Title)
	})
}

func TestPredictSpending(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -10)
	txs := []*dto.TransactionRead{
		tx("10", "Food", transaction.Expense, start),
		tx("30", "Food", transaction.Expense, now),
		tx("100", "Rent", transaction.Expense, now),
		tx("999", "Salary", transaction.Income, now),
	}

	preds := PredictSpending(uuid.New(), txs, now, 30)

	require.Len(t, preds, 2)
	food := preds[0]
	assert.Equal(t, "Food", food.Category)
	// avg 20 * (2 / 10 days) * 30
	assert.Equal(t, "120", food.PredictedAmount.String())
	assert.Equal(t, "0.6", food.Confidence.String())
	assert.Equal(t, "30d", food.Period)
	assert.Equal(t, now.AddDate(0, 0, 30), food.ForecastDate)

	assert.Nil(t, PredictSpending(uuid.New(), nil, now, 30))
}

func TestPredictSpending_ConfidenceCapped(t *testing.T) {
	now := time.Now().UTC()
	var txs []*dto.TransactionRead
	for i := 0; i < 20; i++ {
		txs = append(txs, tx("5", "Coffee", transaction.Expense, now.AddDate(0, 0, -i)))
	}
	preds := PredictSpending(uuid.New(), txs, now, 7)
	require.Len(t, preds, 1)
	assert.Equal(t, "0.95", preds[0].Confidence.StringFixed(2))
}

func TestRecommendBudgets(t *testing.T) {
	now := time.Now()
	recs := RecommendBudgets([]*dto.TransactionRead{
		tx("300", "Rent", transaction.Expense, now),
		tx("100", "Food", transaction.Expense, now),
		tx("5000", "Salary", transaction.Income, now),
	})
	require.Len(t, recs, 2)
	assert.Equal(t, "Rent", recs[0].Category)
	assert.Equal(t, "75.00", recs[0].Percentage)
	assert.Equal(t, "285", recs[0].RecommendedBudget.String())
	assert.Equal(t, "25.00", recs[1].Percentage)

	assert.Empty(t, RecommendBudgets(nil))
}
