package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/config"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/metinatakli/cinema-ticketing/internal/handler"
	"github.com/metinatakli/cinema-ticketing/internal/memstore"
	"github.com/metinatakli/cinema-ticketing/internal/validator"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*Application
	store *memstore.Store
}

func newTestApplication(opts ...func(*Application)) *testApp {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()

	repos := Repositories{
		Tx:       store,
		Users:    store.Users(),
		Movies:   store.Movies(),
		Sessions: store.Sessions(),
		Tickets:  store.Tickets(),
	}

	cfg := config.Config{Env: "test"}

	app := NewApp(
		cfg,
		logger,
		validator.NewValidator(),
		scs.New(),
		NewServices(logger, repos, nil),
		handler.NewHealthcheckHandler(cfg, nil),
	)

	for _, opt := range opts {
		opt(app)
	}

	return &testApp{Application: app, store: store}
}

// serve runs the request through the full router, middleware included.
func (app *testApp) serve(w http.ResponseWriter, r *http.Request) {
	app.Routes().ServeHTTP(w, r)
}

// createUser stores a user without a password hash.
func (app *testApp) createUser(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()

	user := domain.NewUser(username, 30)
	user.Role = role

	require.NoError(t, app.store.Users().Create(context.Background(), user))

	return user
}

func (app *testApp) createMovie(t *testing.T, title string, ageLimit int) *domain.Movie {
	t.Helper()

	movie, err := app.catalog.CreateMovie(context.Background(), title, title+" description", ageLimit)
	require.NoError(t, err)

	return movie
}

func (app *testApp) createSession(t *testing.T, movie *domain.Movie, room int, slot domain.TimeSlot) *domain.Session {
	t.Helper()

	session, err := app.scheduling.Create(context.Background(), movie.ID, time.Now(), room, slot)
	require.NoError(t, err)

	return session
}

func (app *testApp) createTicket(t *testing.T, user *domain.User, session *domain.Session) *domain.Ticket {
	t.Helper()

	ticket, err := app.ticketing.Create(context.Background(), user.ID, session.ID)
	require.NoError(t, err)

	return ticket
}

func setupTestSession(t *testing.T, app *testApp, r *http.Request, user *domain.User) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), user.ID.String())

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return resp
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if validationResp.Message == tt.wantErrMessage {
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
