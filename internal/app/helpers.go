package app

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/metinatakli/cinema-ticketing/internal/jsonutil"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

func (app *Application) readUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name + " parameter")
	}

	return id, nil
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		AgeLimit:    movie.AgeLimit,
	}
}

func toMovieResponses(movies []*domain.Movie) []api.MovieResponse {
	resp := make([]api.MovieResponse, len(movies))
	for i, movie := range movies {
		resp[i] = toMovieResponse(movie)
	}

	return resp
}

func toSessionResponse(session *domain.Session) api.SessionResponse {
	resp := api.SessionResponse{
		Id:         session.ID,
		MovieId:    session.MovieID,
		RoomNumber: session.RoomNumber,
		Date:       openapi_types.Date{Time: session.Date},
		TimeSlot:   int(session.TimeSlot),
		TimeRange:  session.TimeSlot.String(),
		Booked:     session.Booked,
	}

	if session.Movie != nil {
		movie := toMovieResponse(session.Movie)
		resp.Movie = &movie
	}

	return resp
}

func toSessionResponses(sessions []*domain.Session) []api.SessionResponse {
	resp := make([]api.SessionResponse, len(sessions))
	for i, session := range sessions {
		resp[i] = toSessionResponse(session)
	}

	return resp
}

func toTicketResponse(ticket *domain.Ticket) api.TicketResponse {
	resp := api.TicketResponse{
		Id:          ticket.ID,
		UserId:      ticket.UserID,
		SessionId:   ticket.SessionID,
		PurchasedAt: ticket.PurchasedAt,
		Used:        ticket.Used,
	}

	if ticket.Session != nil {
		session := toSessionResponse(ticket.Session)
		resp.Session = &session
	}

	return resp
}

func toTicketResponses(tickets []*domain.Ticket) []api.TicketResponse {
	resp := make([]api.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		resp[i] = toTicketResponse(ticket)
	}

	return resp
}

func toUserResponse(user *domain.User) api.UserResponse {
	return api.UserResponse{
		Id:        user.ID,
		Username:  user.Username,
		Age:       user.Age,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
