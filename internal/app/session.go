package app

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
)

func (s sessionKey) String() string {
	return string(s)
}

const userContextKey = contextKey("user")

func (app *Application) contextSetUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func (app *Application) contextGetUser(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userContextKey).(*domain.User)
	if !ok {
		panic("missing user in request context")
	}

	return user
}
