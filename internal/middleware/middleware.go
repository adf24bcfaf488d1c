package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/jsonutil"
)

// RecoverPanic turns a panic into a 500 response. onPanic, when set, receives the
// recovered value so it can be logged.
func RecoverPanic(onPanic func(r *http.Request, v any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if onPanic != nil {
						onPanic(r, err)
					}

					resp := api.ErrorResponse{
						Message:   "The server encountered a problem and could not process your request",
						RequestId: middleware.GetReqID(r.Context()),
						Timestamp: time.Now(),
					}

					jsonutil.WriteJSON(w, http.StatusInternalServerError, resp, http.Header{
						"Connection": []string{"close"},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	resp := api.ErrorResponse{
		Message:   "The requested resource not found",
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	jsonutil.WriteJSON(w, http.StatusNotFound, resp, nil)
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	resp := api.ErrorResponse{
		Message:   "The method is not supported for this resource",
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	jsonutil.WriteJSON(w, http.StatusMethodNotAllowed, resp, nil)
}
