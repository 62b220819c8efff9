package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/domain/user"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInput is one new transaction. Date is YYYY-MM-DD or RFC 3339;
// empty means now.
type TransactionInput struct {
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Type        transaction.Type `json:"type,omitempty"`
	Date        string           `json:"date,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// TransactionUpdate changes only the non-nil fields.
type TransactionUpdate struct {
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Description *string           `json:"description,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Type        *transaction.Type `json:"type,omitempty"`
	Date        *string           `json:"date,omitempty"`
	Tags        *[]string         `json:"tags,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
}

// TransactionQuery filters a listing. Zero fields are not sent.
type TransactionQuery struct {
	Category  string
	Type      transaction.Type
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

func (q TransactionQuery) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("category", q.Category)
	set("type", string(q.Type))
	set("startDate", q.StartDate)
	set("endDate", q.EndDate)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

type BudgetInput struct {
	Category string           `json:"category"`
	Limit    decimal.Decimal  `json:"limit"`
	Spent    *decimal.Decimal `json:"spent,omitempty"`
	Month    string           `json:"month,omitempty"`
}

type BudgetUpdate struct {
	Category *string          `json:"category,omitempty"`
	Limit    *decimal.Decimal `json:"limit,omitempty"`
	Spent    *decimal.Decimal `json:"spent,omitempty"`
	Month    *string          `json:"month,omitempty"`
}

type GoalInput struct {
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	TargetAmount decimal.Decimal  `json:"targetAmount"`
	SavedAmount  *decimal.Decimal `json:"savedAmount,omitempty"`
	Deadline     string           `json:"deadline"`
	Priority     goal.Priority    `json:"priority,omitempty"`
	Status       goal.Status      `json:"status,omitempty"`
}

type GoalUpdate struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	SavedAmount  *decimal.Decimal `json:"savedAmount,omitempty"`
	Deadline     *string          `json:"deadline,omitempty"`
	Priority     *goal.Priority   `json:"priority,omitempty"`
	Status       *goal.Status     `json:"status,omitempty"`
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*dto.AuthResult, error) {
	var out dto.AuthResult
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Login exchanges credentials for a token and keeps it.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResult, error) {
	var out dto.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Refresh reissues the token and keeps the new one.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, nil, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

func (c *Client) Profile(ctx context.Context) (*dto.UserRead, error) {
	var out dto.UserRead
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name *string, prefs *user.Preferences) (*dto.UserRead, error) {
	body := struct {
		Name        *string           `json:"name,omitempty"`
		Preferences *user.Preferences `json:"preferences,omitempty"`
	}{name, prefs}
	var out dto.UserRead
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTransactions(ctx context.Context, q TransactionQuery) (*dto.TransactionPage, error) {
	var out dto.TransactionPage
	if err := c.do(ctx, http.MethodGet, "/transactions", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (*dto.TransactionRead, error) {
	var out dto.TransactionRead
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportTransactions stores all rows or none. A rejected batch is an
// *APIError whose RowErrors name the failing rows.
func (c *Client) ImportTransactions(ctx context.Context, rows []TransactionInput) ([]*dto.TransactionRead, error) {
	var out []*dto.TransactionRead
	body := map[string]any{"transactions": rows}
	if err := c.do(ctx, http.MethodPost, "/transactions/import", nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var out dto.TransactionRead
	if err := c.do(ctx, http.MethodGet, "/transactions/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, in TransactionUpdate) (*dto.TransactionRead, error) {
	var out dto.TransactionRead
	if err := c.do(ctx, http.MethodPut, "/transactions/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id.String(), nil, nil, nil)
}

func (c *Client) ListBudgets(ctx context.Context, category string) ([]*dto.BudgetRead, error) {
	var q url.Values
	if category != "" {
		q = url.Values{"category": {category}}
	}
	var out []*dto.BudgetRead
	if err := c.do(ctx, http.MethodGet, "/budgets", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBudget(ctx context.Context, in BudgetInput) (*dto.BudgetRead, error) {
	var out dto.BudgetRead
	if err := c.do(ctx, http.MethodPost, "/budgets", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBudget(ctx context.Context, id uuid.UUID, in BudgetUpdate) (*dto.BudgetRead, error) {
	var out dto.BudgetRead
	if err := c.do(ctx, http.MethodPut, "/budgets/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+id.String(), nil, nil, nil)
}

func (c *Client) BudgetRecommendations(ctx context.Context) ([]dto.BudgetRecommendation, error) {
	var out []dto.BudgetRecommendation
	if err := c.do(ctx, http.MethodGet, "/budgets/recommendations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListGoals(ctx context.Context, status goal.Status) ([]*dto.GoalRead, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	var out []*dto.GoalRead
	if err := c.do(ctx, http.MethodGet, "/goals", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGoal(ctx context.Context, in GoalInput) (*dto.GoalRead, error) {
	var out dto.GoalRead
	if err := c.do(ctx, http.MethodPost, "/goals", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id uuid.UUID, in GoalUpdate) (*dto.GoalRead, error) {
	var out dto.GoalRead
	if err := c.do(ctx, http.MethodPut, "/goals/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+id.String(), nil, nil, nil)
}

func (c *Client) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	var out dto.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Trends(ctx context.Context) ([]dto.TrendRow, error) {
	var out []dto.TrendRow
	if err := c.do(ctx, http.MethodGet, "/trends", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Insights(ctx context.Context) ([]*dto.InsightRead, error) {
	var out []*dto.InsightRead
	if err := c.do(ctx, http.MethodGet, "/insights", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkInsightRead(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPut, "/insights/"+id.String()+"/read", nil, nil, nil)
}

// Predictions returns up to days predictions; zero uses the server default.
func (c *Client) Predictions(ctx context.Context, days int) ([]*dto.PredictionRead, error) {
	var q url.Values
	if days != 0 {
		q = url.Values{"days": {strconv.Itoa(days)}}
	}
	var out []*dto.PredictionRead
	if err := c.do(ctx, http.MethodGet, "/predictions", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health reports whether the server answers /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}
