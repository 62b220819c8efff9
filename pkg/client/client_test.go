package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	infracache "github.com/amirasaad/finhealth/infra/cache"
	infraeventbus "github.com/amirasaad/finhealth/infra/eventbus"
	infrarepo "github.com/amirasaad/finhealth/infra/repository"
	"github.com/amirasaad/finhealth/pkg/app"
	"github.com/amirasaad/finhealth/pkg/client"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/testutils"
	"github.com/amirasaad/finhealth/webapi"
	webtestutils "github.com/amirasaad/finhealth/webapi/testutils"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *client.Client
	ctx    context.Context
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	logger := testutils.DiscardLogger()
	memCache := infracache.NewMemoryCache(0)
	s.T().Cleanup(func() { _ = memCache.Close() })
	a := app.New(&app.Deps{
		Uow:      infrarepo.NewUoW(testutils.NewTestDB(s.T())),
		EventBus: infraeventbus.NewWithMemory(logger),
		Cache:    memCache,
		Logger:   logger,
	}, webtestutils.TestConfig())

	s.server = httptest.NewServer(adaptor.FiberApp(webapi.SetupApp(a)))
	s.T().Cleanup(s.server.Close)
	s.client = client.New(s.server.URL, client.WithRetryMax(0))
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TestRoundTrip() {
	res, err := s.client.Register(s.ctx, "Ada", "ada@example.com", "secret1")
	s.Require().NoError(err)
	s.Equal("ada@example.com", res.User.Email)
	s.Equal(res.Token, s.client.Token())

	_, err = s.client.CreateTransaction(s.ctx, client.TransactionInput{
		Amount:      decimal.NewFromInt(2000),
		Description: "Salary",
		Category:    "Salary",
		Type:        transaction.Income,
	})
	s.Require().NoError(err)
	created, err := s.client.ImportTransactions(s.ctx, []client.TransactionInput{
		{Amount: decimal.NewFromInt(300), Description: "Groceries", Category: "Food"},
		{Amount: decimal.NewFromInt(200), Description: "Dinner", Category: "Food"},
	})
	s.Require().NoError(err)
	s.Len(created, 2)

	page, err := s.client.ListTransactions(s.ctx, client.TransactionQuery{Type: transaction.Expense})
	s.Require().NoError(err)
	s.EqualValues(2, page.Total)

	d, err := s.client.Dashboard(s.ctx)
	s.Require().NoError(err)
	s.Equal("75.00", d.SavingsRate)
	s.True(d.TotalSaved.Equal(decimal.NewFromInt(1500)))

	trends, err := s.client.Trends(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(trends, 1)
	s.True(trends[0].Categories["Food"].Equal(decimal.NewFromInt(500)))

	s.Require().NoError(s.client.DeleteTransaction(s.ctx, created[0].ID))
	_, err = s.client.GetTransaction(s.ctx, created[0].ID)
	var apiErr *client.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusNotFound, apiErr.Status)
}

func (s *ClientTestSuite) TestImportRowErrors() {
	_, err := s.client.Register(s.ctx, "Ada", "ada@example.com", "secret1")
	s.Require().NoError(err)

	_, err = s.client.ImportTransactions(s.ctx, []client.TransactionInput{
		{Amount: decimal.NewFromInt(1), Description: "ok", Category: "Food"},
		{Description: "zero", Category: "Food"},
	})
	var apiErr *client.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.Status)
	rows := apiErr.RowErrors()
	s.Require().Len(rows, 1)
	s.Equal(1, rows[0].Index)
}

func (s *ClientTestSuite) TestUnauthorized() {
	_, err := s.client.Dashboard(s.ctx)
	var apiErr *client.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusUnauthorized, apiErr.Status)
}

func TestRetriesIdempotentRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"ok","data":[]}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithRetryMax(2), client.WithToken("t"))
	_, err := c.Insights(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestDoesNotRetryPost(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"title":"Internal Server Error","status":500,"detail":"boom"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithRetryMax(3))
	_, err := c.CreateGoal(context.Background(), client.GoalInput{Name: "Car"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "boom", apiErr.Detail)
	assert.EqualValues(t, 1, calls.Load())
}

func TestDoesNotRetryPostOnDroppedConnection(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_ = conn.Close()
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithRetryMax(2), client.WithToken("t"))
	_, err := c.CreateTransaction(context.Background(), client.TransactionInput{
		Amount:      decimal.NewFromInt(10),
		Description: "Coffee",
		Category:    "Food",
	})
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.EqualValues(t, 1, calls.Load())
}

func TestRetriesGetOnDroppedConnection(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				_ = conn.Close()
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"ok","data":[]}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithRetryMax(2), client.WithToken("t"))
	_, err := c.Insights(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}
