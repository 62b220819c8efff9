package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/amirasaad/finhealth/pkg/currency"
	"github.com/amirasaad/finhealth/pkg/domain/insight"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	titleStyle   = color.New(color.FgHiRed, color.Bold)
	successStyle = color.New(color.FgCyan)
	warningStyle = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed, color.Bold)
	subtleStyle  = color.New(color.FgHiBlack)
	incomeStyle  = color.New(color.FgGreen)
	expenseStyle = color.New(color.FgRed)
)

const barWidth = 30

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func signed(t *dto.TransactionRead) string {
	if t.Type == transaction.Income {
		return incomeStyle.Sprintf("+%s", money(t.Amount))
	}
	return expenseStyle.Sprintf("-%s", money(t.Amount))
}

func renderTransactions(w io.Writer, page *dto.TransactionPage) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCATEGORY\tDESCRIPTION\tID")
	for _, t := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format("2006-01-02"), signed(t), t.Category, t.Description, subtleStyle.Sprint(t.ID))
	}
	_ = tw.Flush()
	fmt.Fprintln(w, subtleStyle.Sprintf("%d-%d of %d",
		min(page.Offset+1, int(page.Total)), page.Offset+len(page.Items), page.Total))
}

// bar draws value as a share of top in barWidth cells.
func bar(value, top decimal.Decimal) string {
	if !top.IsPositive() {
		return ""
	}
	n := int(value.Div(top).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	return strings.Repeat("█", min(max(n, 0), barWidth))
}

// renderDashboard prints the totals in the user's display currency.
func renderDashboard(w io.Writer, d *dto.Dashboard, code string) {
	fmt.Fprintln(w, titleStyle.Sprint("This month"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Income\t%s\n", incomeStyle.Sprint(currency.Format(d.TotalIncome, code)))
	fmt.Fprintf(tw, "Expenses\t%s\n", expenseStyle.Sprint(currency.Format(d.TotalExpenses, code)))
	fmt.Fprintf(tw, "Saved\t%s\n", currency.Format(d.TotalSaved, code))
	fmt.Fprintf(tw, "Savings rate\t%s%%\n", d.SavingsRate)
	alert := d.BudgetAlert + "%"
	if d.BudgetAlert != "0.0" {
		alert = warningStyle.Sprint(alert)
	}
	fmt.Fprintf(tw, "Budgets over limit\t%s\n", alert)
	fmt.Fprintf(tw, "Transactions\t%d\n", d.TransactionCount)
	_ = tw.Flush()

	if len(d.SpendingByCategory) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Sprint("Spending by category"))
	top := d.SpendingByCategory[0].Amount
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range d.SpendingByCategory {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Category, money(c.Amount), expenseStyle.Sprint(bar(c.Amount, top)))
	}
	_ = tw.Flush()
}

func renderTrends(w io.Writer, rows []dto.TrendRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, subtleStyle.Sprint("No expenses in the last six months."))
		return
	}
	top := decimal.Zero
	for _, r := range rows {
		top = decimal.Max(top, r.Total())
	}
	fmt.Fprintln(w, titleStyle.Sprint("Monthly expenses"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		parts := make([]string, 0, len(r.Categories))
		for _, name := range r.CategoryNames() {
			parts = append(parts, fmt.Sprintf("%s %s", name, money(r.Categories[name])))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Month, money(r.Total()),
			expenseStyle.Sprint(bar(r.Total(), top)), subtleStyle.Sprint(strings.Join(parts, ", ")))
	}
	_ = tw.Flush()
}

var priorityStyle = map[insight.Priority]*color.Color{
	insight.PriorityHigh:   errorStyle,
	insight.PriorityMedium: warningStyle,
	insight.PriorityLow:    successStyle,
}

func renderInsights(w io.Writer, list []*dto.InsightRead) {
	if len(list) == 0 {
		fmt.Fprintln(w, subtleStyle.Sprint("No insights yet."))
		return
	}
	for _, in := range list {
		style, ok := priorityStyle[in.Priority]
		if !ok {
			style = successStyle
		}
		marker := "●"
		if in.Read {
			marker = "○"
		}
		fmt.Fprintf(w, "%s %s %s\n", style.Sprint(marker), color.New(color.Bold).Sprint(in.Title), subtleStyle.Sprint(in.ID))
		fmt.Fprintf(w, "  %s\n", in.Description)
	}
}

func renderPredictions(w io.Writer, preds []*dto.PredictionRead) {
	if len(preds) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Sprint("Predicted spending"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range preds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%% confidence\n",
			p.ForecastDate.Format("2006-01-02"), p.Category, money(p.PredictedAmount),
			p.Confidence.Mul(decimal.NewFromInt(100)).StringFixed(0))
	}
	_ = tw.Flush()
}
