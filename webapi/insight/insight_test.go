package insight_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/finhealth/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type InsightTestSuite struct {
	testutils.E2ETestSuite
	user *testutils.TestUser
}

func TestInsightTestSuite(t *testing.T) {
	suite.Run(t, new(InsightTestSuite))
}

func (s *InsightTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.user = s.RegisterUser()
}

func (s *InsightTestSuite) post(path, body string) {
	resp := s.MakeRequest(http.MethodPost, path, body, s.user.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode, body)
	_ = resp.Body.Close()
}

func (s *InsightTestSuite) dashboard() map[string]any {
	resp := s.MakeRequest(http.MethodGet, "/dashboard", "", s.user.Token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var d map[string]any
	s.Decode(resp, &d)
	return d
}

func (s *InsightTestSuite) TestDashboard_Empty() {
	d := s.dashboard()
	s.Equal("0.00", d["savingsRate"])
	s.Equal("0.0", d["budgetAlert"])
	s.EqualValues(0, d["transactionCount"])
}

func (s *InsightTestSuite) TestDashboard_CurrentMonth() {
	s.post("/transactions", `{"amount":2000,"description":"Salary","category":"Salary","type":"income"}`)
	s.post("/transactions", `{"amount":500,"description":"Groceries","category":"Food"}`)
	s.post("/budgets", `{"category":"Food","limit":400,"spent":500}`)
	s.post("/budgets", `{"category":"Fun","limit":100}`)

	d := s.dashboard()
	s.Equal("75.00", d["savingsRate"])
	s.EqualValues(2000, d["totalIncome"])
	s.EqualValues(500, d["totalExpenses"])
	s.EqualValues(1500, d["totalSaved"])
	s.Equal("50.0", d["budgetAlert"])
	s.EqualValues(2, d["transactionCount"])

	// A new transaction drops the cached dashboard.
	s.post("/transactions", `{"amount":500,"description":"Dinner","category":"Food"}`)
	d = s.dashboard()
	s.Equal("50.00", d["savingsRate"])
}

func (s *InsightTestSuite) TestTrends() {
	s.post("/transactions", `{"amount":120,"description":"Groceries","category":"Food"}`)
	s.post("/transactions", `{"amount":3000,"description":"Salary","category":"Salary","type":"income"}`)

	resp := s.MakeRequest(http.MethodGet, "/trends", "", s.user.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var rows []map[string]any
	s.Decode(resp, &rows)
	s.Require().Len(rows, 1)
	s.EqualValues(120, rows[0]["Food"])
	s.NotContains(rows[0], "Salary")
}

func (s *InsightTestSuite) TestInsights_GeneratedOnChange() {
	s.post("/transactions", `{"amount":2000,"description":"Salary","category":"Salary","type":"income"}`)
	s.post("/transactions", `{"amount":100,"description":"Groceries","category":"Food"}`)

	resp := s.MakeRequest(http.MethodGet, "/insights", "", s.user.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var list []map[string]any
	s.Decode(resp, &list)
	s.Require().NotEmpty(list)

	id := list[0]["id"].(string)
	resp = s.MakeRequest(http.MethodPut, "/insights/"+id+"/read", "", s.user.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.MakeRequest(http.MethodPut, "/insights/"+uuid.NewString()+"/read", "", s.user.Token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	other := s.RegisterUser()
	resp = s.MakeRequest(http.MethodPut, "/insights/"+id+"/read", "", other.Token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *InsightTestSuite) TestPredictions_Days() {
	resp := s.MakeRequest(http.MethodGet, "/predictions", "", s.user.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	for _, q := range []string{"0", "-3", "ten"} {
		resp = s.MakeRequest(http.MethodGet, "/predictions?days="+q, "", s.user.Token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, q)
		_ = resp.Body.Close()
	}
}

func (s *InsightTestSuite) TestRequiresToken() {
	for _, path := range []string{"/dashboard", "/trends", "/insights", "/predictions"} {
		resp := s.MakeRequest(http.MethodGet, path, "", "")
		s.Equal(fiber.StatusUnauthorized, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}
