package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/app"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":   {},
	"requestId":   {},
	"createdAt":   {},
	"purchasedAt": {},
	"version":     {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch nested := m[k].(type) {
		case map[string]any:
			cleanMap(nested)
		case []any:
			for _, item := range nested {
				if itemMap, ok := item.(map[string]any); ok {
					cleanMap(itemMap)
				}
			}
		}
	}
}

func truncateAll(t testing.TB, app *TestApp) {
	_, err := app.DB.Exec(context.Background(), "TRUNCATE tickets, sessions, movies, users CASCADE")
	require.NoError(t, err)

	require.NoError(t, app.Redis.FlushDB(context.Background()).Err())
}

func insertTestUser(t testing.TB, app *TestApp, id uuid.UUID, username string, role domain.Role) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = app.DB.Exec(
		context.Background(),
		`INSERT INTO users (id, username, password_hash, age, role) VALUES ($1, $2, $3, $4, $5)`,
		id, username, hash, TestUserAge, string(role),
	)
	require.NoError(t, err)
}

func insertTestMovie(t testing.TB, app *TestApp, id uuid.UUID, title string, ageLimit int) {
	_, err := app.DB.Exec(
		context.Background(),
		`INSERT INTO movies (id, title, description, age_limit) VALUES ($1, $2, $3, $4)`,
		id, title, TestMovieDescription, ageLimit,
	)
	require.NoError(t, err)
}

func insertTestSession(t testing.TB, app *TestApp, id, movieId uuid.UUID, room int, slot domain.TimeSlot, booked bool) {
	_, err := app.DB.Exec(
		context.Background(),
		`INSERT INTO sessions (id, movie_id, room_number, session_date, time_slot, booked)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, movieId, room, TestSessionDate, int(slot), booked,
	)
	require.NoError(t, err)
}

func insertTestTicket(t testing.TB, app *TestApp, id, userId, sessionId uuid.UUID, used bool) {
	_, err := app.DB.Exec(
		context.Background(),
		`INSERT INTO tickets (id, user_id, session_id, used) VALUES ($1, $2, $3, $4)`,
		id, userId, sessionId, used,
	)
	require.NoError(t, err)
}

// sessionCookies stores a session for userId in Redis and returns the cookie
// that refers to it.
func (a *TestApp) sessionCookies(t testing.TB, userId uuid.UUID) []*http.Cookie {
	ctx, err := a.SessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	a.SessionManager.Put(ctx, app.SessionKeyUserId.String(), userId.String())

	token, expiry, err := a.SessionManager.Commit(ctx)
	require.NoError(t, err)

	return []*http.Cookie{{
		Name:    a.SessionManager.Cookie.Name,
		Value:   token,
		Expires: expiry,
	}}
}

func userCookies(t testing.TB, app *TestApp) []*http.Cookie {
	return app.sessionCookies(t, TestUserId)
}

func managerCookies(t testing.TB, app *TestApp) []*http.Cookie {
	return app.sessionCookies(t, TestManagerId)
}

// seedUsers inserts the default customer and manager.
func seedUsers(t testing.TB, app *TestApp) {
	insertTestUser(t, app, TestUserId, TestUserName, domain.RoleCustomer)
	insertTestUser(t, app, TestManagerId, TestManagerName, domain.RoleManager)
}
