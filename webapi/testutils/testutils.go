// Package testutils runs the HTTP API against a migrated SQLite database for
// end-to-end tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	infracache "github.com/amirasaad/finhealth/infra/cache"
	infraeventbus "github.com/amirasaad/finhealth/infra/eventbus"
	infrarepo "github.com/amirasaad/finhealth/infra/repository"
	"github.com/amirasaad/finhealth/pkg/app"
	"github.com/amirasaad/finhealth/pkg/config"
	pkgtestutils "github.com/amirasaad/finhealth/pkg/testutils"
	"github.com/amirasaad/finhealth/webapi"
	"github.com/amirasaad/finhealth/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TestPassword is the password of every user registered by RegisterUser.
const TestPassword = "password123"

// TestUser is a registered account and its token.
type TestUser struct {
	ID    uuid.UUID
	Email string
	Token string
}

// E2ETestSuite serves the full route table over a fresh SQLite database per test.
type E2ETestSuite struct {
	suite.Suite
	App   *app.App
	Fiber *fiber.App
	Cfg   *config.App
}

// TestConfig returns an application config suitable for in-process tests.
func TestConfig() *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Host: "localhost", Port: 3000},
		Log:    &config.Log{Format: "text"},
		DB:     &config.DB{Driver: "sqlite"},
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret: "test-secret",
			Expiry: time.Hour,
		}},
		Cache:     &config.Cache{Driver: "memory", TTL: time.Minute},
		Broker:    &config.Broker{},
		Insights:  &config.Insights{Inline: true, LookbackDays: 90, HorizonDays: 30, SweepInterval: time.Hour},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
	}
}

func (s *E2ETestSuite) SetupTest() {
	s.Cfg = TestConfig()
	logger := pkgtestutils.DiscardLogger()
	memCache := infracache.NewMemoryCache(0)
	s.T().Cleanup(func() { _ = memCache.Close() })
	deps := &app.Deps{
		Uow:      infrarepo.NewUoW(pkgtestutils.NewTestDB(s.T())),
		EventBus: infraeventbus.NewWithMemory(logger),
		Cache:    memCache,
		Logger:   logger,
	}
	s.App = app.New(deps, s.Cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// MakeRequest sends a JSON request through the Fiber app.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and unmarshals its data into out.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) common.Response {
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &envelope), string(raw))
	if out != nil && len(envelope.Data) > 0 {
		s.Require().NoError(json.Unmarshal(envelope.Data, out), string(envelope.Data))
	}
	return envelope.Response
}

// Problem reads a problem details body.
func (s *E2ETestSuite) Problem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// RegisterUser creates an account with a random email and TestPassword.
func (s *E2ETestSuite) RegisterUser() *TestUser {
	email := fmt.Sprintf("test_%s@example.com", uuid.NewString()[:8])
	body := fmt.Sprintf(`{"name":"Test User","email":"%s","password":"%s"}`, email, TestPassword)
	resp := s.MakeRequest(http.MethodPost, "/auth/register", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	s.Decode(resp, &result)
	s.Require().NotEmpty(result.Token)
	return &TestUser{ID: result.User.ID, Email: email, Token: result.Token}
}

// LoginUser exchanges credentials for a token.
func (s *E2ETestSuite) LoginUser(email, password string) *http.Response {
	body := fmt.Sprintf(`{"email":"%s","password":"%s"}`, email, password)
	return s.MakeRequest(http.MethodPost, "/auth/login", body, "")
}
