package transaction_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/finhealth/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	testutils.E2ETestSuite
	user *testutils.TestUser
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.user = s.RegisterUser()
}

func (s *TransactionTestSuite) create(body string) map[string]any {
	resp := s.MakeRequest(http.MethodPost, "/transactions", body, s.user.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var tx map[string]any
	s.Decode(resp, &tx)
	return tx
}

func (s *TransactionTestSuite) TestRequiresToken() {
	resp := s.MakeRequest(http.MethodGet, "/transactions", "", "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.MakeRequest(http.MethodGet, "/transactions", "", "garbage")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *TransactionTestSuite) TestCreate_Defaults() {
	tx := s.create(`{"amount":12.5,"description":"Lunch","category":"Food"}`)
	s.Equal("expense", tx["type"])
	s.EqualValues(12.5, tx["amount"])
	s.NotEmpty(tx["date"])
}

func (s *TransactionTestSuite) TestCreate_Validation() {
	cases := []string{
		`{"description":"Lunch","category":"Food"}`,
		`{"amount":10,"category":"Food"}`,
		`{"amount":10,"description":"Lunch","category":"Food","type":"gift"}`,
		`{"amount":10,"description":"Lunch","category":"Food","date":"yesterday"}`,
	}
	for _, body := range cases {
		resp := s.MakeRequest(http.MethodPost, "/transactions", body, s.user.Token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, body)
		_ = resp.Body.Close()
	}
}

func (s *TransactionTestSuite) TestList_FiltersAndPages() {
	s.create(`{"amount":100,"description":"Groceries","category":"Food","date":"2024-04-02"}`)
	s.create(`{"amount":50,"description":"Bus","category":"Transport","date":"2024-04-03"}`)
	s.create(`{"amount":2000,"description":"Salary","category":"Salary","type":"income","date":"2024-04-01"}`)

	resp := s.MakeRequest(http.MethodGet, "/transactions?type=expense", "", s.user.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var page struct {
		Items []map[string]any `json:"items"`
		Total int64            `json:"total"`
		Limit int              `json:"limit"`
	}
	s.Decode(resp, &page)
	s.EqualValues(2, page.Total)
	s.Equal(20, page.Limit)
	s.Equal("Bus", page.Items[0]["description"])

	resp = s.MakeRequest(http.MethodGet, "/transactions?startDate=2024-04-02&endDate=2024-04-02", "", s.user.Token)
	s.Decode(resp, &page)
	s.EqualValues(1, page.Total)
	s.Equal("Groceries", page.Items[0]["description"])

	resp = s.MakeRequest(http.MethodGet, "/transactions?limit=1&offset=1", "", s.user.Token)
	s.Decode(resp, &page)
	s.EqualValues(3, page.Total)
	s.Len(page.Items, 1)

	resp = s.MakeRequest(http.MethodGet, "/transactions?startDate=soon", "", s.user.Token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *TransactionTestSuite) TestUpdateAndDelete() {
	tx := s.create(`{"amount":10,"description":"Coffee","category":"Food"}`)
	path := fmt.Sprintf("/transactions/%s", tx["id"])

	resp := s.MakeRequest(http.MethodPut, path, `{"amount":12,"notes":"oat milk"}`, s.user.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var updated map[string]any
	s.Decode(resp, &updated)
	s.EqualValues(12, updated["amount"])
	s.Equal("oat milk", updated["notes"])
	s.Equal("Coffee", updated["description"])

	resp = s.MakeRequest(http.MethodDelete, path, "", s.user.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.MakeRequest(http.MethodGet, path, "", s.user.Token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *TransactionTestSuite) TestOtherUsersTransactionIsNotFound() {
	tx := s.create(`{"amount":10,"description":"Coffee","category":"Food"}`)
	other := s.RegisterUser()
	path := fmt.Sprintf("/transactions/%s", tx["id"])

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp := s.MakeRequest(method, path, "", other.Token)
		s.Equal(fiber.StatusNotFound, resp.StatusCode, method)
		_ = resp.Body.Close()
	}
	resp := s.MakeRequest(http.MethodPut, path, `{"amount":1}`, other.Token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *TransactionTestSuite) TestGet_InvalidID() {
	resp := s.MakeRequest(http.MethodGet, "/transactions/not-a-uuid", "", s.user.Token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.MakeRequest(http.MethodGet, "/transactions/"+uuid.NewString(), "", s.user.Token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *TransactionTestSuite) TestImport_AllOrNothing() {
	body := `{"transactions":[
		{"amount":10,"description":"ok","category":"Food"},
		{"description":"no amount","category":"Food"},
		{"amount":5,"description":"ok too","category":"Food"},
		{"amount":5,"category":"Food"}
	]}`
	resp := s.MakeRequest(http.MethodPost, "/transactions/import", body, s.user.Token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd := s.Problem(resp)
	rows, ok := pd.Errors.([]any)
	s.Require().True(ok)
	s.Require().Len(rows, 2)
	s.EqualValues(1, rows[0].(map[string]any)["index"])
	s.EqualValues(3, rows[1].(map[string]any)["index"])

	resp = s.MakeRequest(http.MethodGet, "/transactions", "", s.user.Token)
	var page struct {
		Total int64 `json:"total"`
	}
	s.Decode(resp, &page)
	s.Zero(page.Total)
}

func (s *TransactionTestSuite) TestImport() {
	body := `{"transactions":[
		{"amount":10,"description":"a","category":"Food"},
		{"amount":2500,"description":"b","category":"Salary","type":"income","date":"2024-04-01"}
	]}`
	resp := s.MakeRequest(http.MethodPost, "/transactions/import", body, s.user.Token)
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	var created []map[string]any
	s.Decode(resp, &created)
	s.Len(created, 2)

	resp = s.MakeRequest(http.MethodPost, "/transactions/import", `{"transactions":{"amount":1}}`, s.user.Token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("transactions must be an array", s.Problem(resp).Detail)
}
