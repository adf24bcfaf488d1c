package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinema-ticketing/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/sync/errgroup"
)

const (
	dbName         = "cinema_ticketing"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
	server         *httptest.Server
}

// SetupSuite starts PostgreSQL and Redis side by side, then wires the
// application against them exactly as Run does in production.
func (s *BaseSuite) SetupSuite() {
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		var err error
		s.dbContainer, err = getDbContainer(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		s.cacheContainer, err = getCacheContainer(ctx)
		return err
	})

	err := g.Wait()
	if err != nil {
		s.T().Fatalf("failed to start containers: %s", err)
	}

	cfg := config.Config{
		Port: 3000,
		Env:  "test",
		DB: config.DBConfig{
			DSN:          s.dbContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: config.RedisConfig{
			URL:          s.cacheContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Cache: config.CacheConfig{
			AvailabilityTTL: time.Minute,
		},
	}

	s.app, err = newTestApp(cfg)
	if err != nil {
		s.T().Fatalf("cannot initialize app: %s", err)
	}

	s.server = httptest.NewServer(s.app.App.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.app != nil {
		s.app.Close()
	}
	if s.dbContainer != nil {
		terminate(s.dbContainer.Container)
	}
	if s.cacheContainer != nil {
		terminate(s.cacheContainer.Container)
	}
}

func terminate(container testcontainers.Container) {
	err := testcontainers.TerminateContainer(container)
	if err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// SetupTest starts every test from empty tables and an empty cache.
func (s *BaseSuite) SetupTest() {
	truncateAll(s.T(), s.app)
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	Cookies          func(t testing.TB, app *TestApp) []*http.Cookie
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		var cookies []*http.Cookie
		if s.Cookies != nil {
			cookies = s.Cookies(t, testApp)
		}

		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, cookies)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
