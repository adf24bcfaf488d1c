package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinema-ticketing/internal/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(middleware.NotFoundHandler)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler)

	r.Use(chimiddleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.logRequests)
	r.Use(middleware.RecoverPanic(app.logPanic))
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.health.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.RegisterUser)
		r.Post("/login", app.Login)
		r.With(app.requireAuthentication).Post("/logout", app.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/users/me", app.GetCurrentUser)

		r.Get("/movies", app.GetMovies)
		r.Get("/movies/{movieId}", app.GetMovieById)

		r.Get("/sessions", app.GetSessions)
		r.Get("/sessions/{sessionId}", app.GetSessionById)

		r.Get("/tickets", app.GetTickets)
		r.Post("/tickets", app.CreateTicket)
		r.Get("/tickets/{ticketId}", app.GetTicketById)
		r.Delete("/tickets/{ticketId}", app.DeleteTicket)

		r.Post("/watch/{ticketId}", app.WatchMovie)
		r.Get("/watch/history", app.GetWatchHistory)

		r.Group(func(r chi.Router) {
			r.Use(app.requireManager)

			r.Patch("/users/{userId}/role", app.UpdateUserRole)

			r.Post("/movies", app.CreateMovie)
			r.Post("/movies/bulk", app.BulkCreateMovies)
			r.Put("/movies/{movieId}", app.UpdateMovie)
			r.Delete("/movies/{movieId}", app.DeleteMovie)

			r.Post("/sessions", app.CreateSession)
			r.Post("/sessions/bulk/{movieId}", app.BulkCreateSessions)
		})
	})

	return r
}
