package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/domain/insight"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	highSpendingRatio = 80
	goodSavingsRatio  = 60
	recommendedShare  = "0.95"
	maxConfidence     = "0.95"
	baseConfidence    = "0.5"
	confidenceStep    = "0.05"
)

// Input is everything the generator looks at for one user.
type Input struct {
	UserID       uuid.UUID
	Transactions []*dto.TransactionRead
	Budgets      []*dto.BudgetRead
	Goals        []*dto.GoalRead
	Now          time.Time
}

// GenerateInsights applies the rule set to in and returns the resulting
// insights, all tagged with insight.SourceGenerator.
func GenerateInsights(in Input) []*dto.InsightCreate {
	var out []*dto.InsightCreate
	add := func(kind insight.Kind, prio insight.Priority, title, desc string, meta map[string]any) {
		out = append(out, &dto.InsightCreate{
			ID:          uuid.New(),
			UserID:      in.UserID,
			Title:       title,
			Description: desc,
			Type:        kind,
			Priority:    prio,
			Actionable:  kind != insight.KindAchievement,
			Source:      insight.SourceGenerator,
			Metadata:    meta,
		})
	}

	income, expense := Totals(in.Transactions)
	if income.IsPositive() {
		ratio := expense.Div(income).Mul(hundred)
		pct := ratio.StringFixed(1)
		switch {
		case ratio.GreaterThan(decimal.NewFromInt(highSpendingRatio)):
			add(insight.KindWarning, insight.PriorityHigh,
				"High Spending Alert",
				fmt.Sprintf("You are spending %s%% of your income. Consider reducing expenses to maintain financial health.", pct),
				map[string]any{"expenseRatio": pct})
		case ratio.LessThan(decimal.NewFromInt(goodSavingsRatio)):
			add(insight.KindAchievement, insight.PriorityLow,
				"Great Savings Rate!",
				fmt.Sprintf("Only %s%% of your income is being spent. You are on track for financial success!", pct),
				map[string]any{"expenseRatio": pct})
		}
	}

	if cats := ByCategory(in.Transactions); len(cats) > 0 {
		top := cats[0]
		add(insight.KindTip, insight.PriorityMedium,
			fmt.Sprintf("Review %s Spending", capitalize(top.Category)),
			fmt.Sprintf("Your highest spending category is %s at $%s. Look for opportunities to optimize.",
				top.Category, top.Amount.StringFixed(2)),
			map[string]any{"category": top.Category, "amount": top.Amount.StringFixed(2)})
	}

	for _, b := range in.Budgets {
		if !b.Spent.GreaterThan(b.Limit) {
			continue
		}
		add(insight.KindWarning, insight.PriorityHigh,
			fmt.Sprintf("%s Budget Exceeded", capitalize(b.Category)),
			fmt.Sprintf("You have spent $%s of your $%s %s budget for %s.",
				b.Spent.StringFixed(2), b.Limit.StringFixed(2), b.Category, b.Month.UTC().Format("January 2006")),
			map[string]any{"budgetId": b.ID.String(), "category": b.Category})
	}

	for _, g := range in.Goals {
		if g.Status != goal.StatusActive || !in.Now.After(g.Deadline) || !g.SavedAmount.LessThan(g.TargetAmount) {
			continue
		}
		add(insight.KindGoal, insight.PriorityMedium,
			fmt.Sprintf("Goal Deadline Passed: %s", g.Name),
			fmt.Sprintf("You saved $%s of $%s by %s. Consider extending the deadline or adjusting the target.",
				g.SavedAmount.StringFixed(2), g.TargetAmount.StringFixed(2), g.Deadline.UTC().Format("2006-01-02")),
			map[string]any{"goalId": g.ID.String()})
	}
	return out
}

// PredictSpending forecasts each expense category over horizonDays from its
// average amount and frequency within the history span.
func PredictSpending(userID uuid.UUID, txs []*dto.TransactionRead, now time.Time, horizonDays int) []*dto.PredictionCreate {
	type stats struct {
		sum   decimal.Decimal
		count int64
	}
	groups := make(map[string]*stats)
	var first, last time.Time
	for _, t := range txs {
		if t.Type != transaction.Expense {
			continue
		}
		if first.IsZero() || t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
		s, ok := groups[t.Category]
		if !ok {
			s = &stats{}
			groups[t.Category] = s
		}
		s.sum = s.sum.Add(t.Amount)
		s.count++
	}
	if len(groups) == 0 {
		return nil
	}

	span := int64(last.Sub(first).Hours() / 24)
	if span < 1 {
		span = 1
	}
	horizon := decimal.NewFromInt(int64(horizonDays))
	forecast := now.UTC().AddDate(0, 0, horizonDays)
	period := fmt.Sprintf("%dd", horizonDays)

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	out := make([]*dto.PredictionCreate, 0, len(groups))
	for _, c := range categories {
		s := groups[c]
		count := decimal.NewFromInt(s.count)
		avg := s.sum.Div(count)
		frequency := count.Div(decimal.NewFromInt(span))
		confidence := decimal.RequireFromString(baseConfidence).
			Add(decimal.RequireFromString(confidenceStep).Mul(count))
		confidence = decimal.Min(confidence, decimal.RequireFromString(maxConfidence))

		out = append(out, &dto.PredictionCreate{
			ID:              uuid.New(),
			UserID:          userID,
			Category:        c,
			PredictedAmount: avg.Mul(frequency).Mul(horizon).Round(2),
			Confidence:      confidence.Round(2),
			Period:          period,
			ForecastDate:    forecast,
		})
	}
	return out
}

// RecommendBudgets suggests a cap per expense category at 95% of what was spent.
func RecommendBudgets(txs []*dto.TransactionRead) []dto.BudgetRecommendation {
	cats := ByCategory(txs)
	_, total := Totals(txs)
	if len(cats) == 0 || !total.IsPositive() {
		return []dto.BudgetRecommendation{}
	}
	share := decimal.RequireFromString(recommendedShare)
	out := make([]dto.BudgetRecommendation, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.BudgetRecommendation{
			Category:          c.Category,
			CurrentSpending:   c.Amount.Round(2),
			Percentage:        c.Amount.Div(total).Mul(hundred).StringFixed(2),
			RecommendedBudget: c.Amount.Mul(share).Round(2),
		})
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
