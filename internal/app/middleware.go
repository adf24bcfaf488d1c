package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

// requireAuthentication resolves the session's user and stores it in the request
// context. The user is reloaded on every request so a role change applies at once.
func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := app.sessionManager.GetString(r.Context(), SessionKeyUserId.String())
		if raw == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		userId, err := uuid.Parse(raw)
		if err != nil {
			app.sessionManager.Remove(r.Context(), SessionKeyUserId.String())
			app.unauthorizedAccessResponse(w, r)
			return
		}

		user, err := app.accounts.FindById(r.Context(), userId)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.contextGetLogger(r).Warn("session refers to a missing user", "user_id", userId)
				app.sessionManager.Remove(r.Context(), SessionKeyUserId.String())
				app.unauthorizedAccessResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		next.ServeHTTP(w, app.contextSetUser(r, user))
	})
}

// requireManager must run after requireAuthentication.
func (app *Application) requireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.contextGetUser(r)

		if !user.IsManager() {
			app.contextGetLogger(r).Warn("manager route refused", "user_id", user.ID)
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) logPanic(r *http.Request, v any) {
	app.logError(r, fmt.Errorf("panic: %v", v))
}
