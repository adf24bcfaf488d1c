package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	BaseSuite
}

func TestAuthSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestRegisterUser() {
	scenarios := []Scenario{
		{
			Name:             "returns 400 for request with malformed JSON",
			Method:           "POST",
			URL:              "/auth/register",
			Body:             strings.NewReader(`{"username":"johndoe"`),
			ExpectedStatus:   400,
			ExpectedResponse: `{"message": "body contains badly-formed JSON"}`,
		},
		{
			Name:   "returns 422 for invalid input data",
			Method: "POST",
			URL:    "/auth/register",
			Body: strings.NewReader(`{
				"username": "jd",
				"password": "Test123!@#",
				"age": 30
			}`),
			ExpectedStatus: 422,
			ExpectedResponse: `{
				"message": "One or more fields have invalid values",
				"validationErrors": [
					{"field": "Username", "issue": "must be at least 3 characters long"}
				]
			}`,
		},
		{
			Name:   "registers a customer",
			Method: "POST",
			URL:    "/auth/register",
			Body: strings.NewReader(`{
				"username": "johndoe",
				"password": "Test123!@#",
				"age": 30
			}`),
			ExpectedStatus: 201,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var user api.UserResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&user))

				assert.Equal(t, "johndoe", user.Username)
				assert.Equal(t, 30, user.Age)
				assert.Equal(t, "customer", user.Role)

				var hash []byte
				err := app.DB.QueryRow(context.Background(),
					"SELECT password_hash FROM users WHERE id = $1", user.Id).Scan(&hash)
				require.NoError(t, err)
				assert.NotEqual(t, []byte("Test123!@#"), hash)
			},
		},
		{
			Name:   "returns 409 for a taken username",
			Method: "POST",
			URL:    "/auth/register",
			Body: strings.NewReader(`{
				"username": "johndoe",
				"password": "Test123!@#",
				"age": 30
			}`),
			ExpectedStatus:   409,
			ExpectedResponse: `{"message": "user already exists"}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *AuthTestSuite) TestLogin() {
	seedUsers(s.T(), s.app)

	scenarios := []Scenario{
		{
			Name:             "returns 401 for a wrong password",
			Method:           "POST",
			URL:              "/auth/login",
			Body:             strings.NewReader(`{"username": "johndoe", "password": "Wrong123!@#"}`),
			ExpectedStatus:   401,
			ExpectedResponse: `{"message": "Invalid username or password"}`,
		},
		{
			Name:             "returns 401 for an unknown username",
			Method:           "POST",
			URL:              "/auth/login",
			Body:             strings.NewReader(`{"username": "nobody", "password": "Test123!@#"}`),
			ExpectedStatus:   401,
			ExpectedResponse: `{"message": "Invalid username or password"}`,
		},
		{
			Name:           "starts a session stored in redis",
			Method:         "POST",
			URL:            "/auth/login",
			Body:           strings.NewReader(`{"username": "johndoe", "password": "Test123!@#"}`),
			ExpectedStatus: 200,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				cookies := res.Cookies()
				require.NotEmpty(t, cookies)

				keys, err := app.Redis.Keys(context.Background(), "scs:session:*").Result()
				require.NoError(t, err)
				assert.NotEmpty(t, keys)

				req, err := prepareRequest("GET", "/users/me", nil, nil, cookies)
				require.NoError(t, err)

				rec := httptest.NewRecorder()
				app.App.Routes().ServeHTTP(rec, req)

				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *AuthTestSuite) TestLogout() {
	seedUsers(s.T(), s.app)

	var cookies []*http.Cookie

	scenarios := []Scenario{
		{
			Name:           "returns 401 without a session",
			Method:         "POST",
			URL:            "/auth/logout",
			ExpectedStatus: 401,
		},
		{
			Name:   "destroys the session",
			Method: "POST",
			URL:    "/auth/logout",
			Cookies: func(t testing.TB, app *TestApp) []*http.Cookie {
				cookies = userCookies(t, app)
				return cookies
			},
			ExpectedStatus: 204,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				req, err := prepareRequest("GET", "/users/me", nil, nil, cookies)
				require.NoError(t, err)

				rec := httptest.NewRecorder()
				app.App.Routes().ServeHTTP(rec, req)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
