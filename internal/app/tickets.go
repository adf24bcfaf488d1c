package app

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

// GetTickets lists every ticket for managers and only the caller's own tickets
// for customers.
func (app *Application) GetTickets(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	tickets, err := app.ticketing.FindAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !user.IsManager() {
		own := tickets[:0]
		for _, ticket := range tickets {
			if ticket.UserID == user.ID {
				own = append(own, ticket)
			}
		}
		tickets = own
	}

	resp := api.TicketListResponse{
		Tickets: toTicketResponses(tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateTicket(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	var input api.CreateTicketRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	ticket, err := app.ticketing.Create(r.Context(), user.ID, input.SessionId)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/tickets/%s", ticket.ID))

	err = app.writeJSON(w, http.StatusCreated, toTicketResponse(ticket), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTicketById(w http.ResponseWriter, r *http.Request) {
	ticket, ok := app.loadOwnTicket(w, r)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, toTicketResponse(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticket, ok := app.loadOwnTicket(w, r)
	if !ok {
		return
	}

	err := app.ticketing.Remove(r.Context(), ticket.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadOwnTicket reads the ticketId parameter and returns the ticket when the
// caller owns it or is a manager. Tickets of other users are reported as not
// found. On failure the response has already been written.
func (app *Application) loadOwnTicket(w http.ResponseWriter, r *http.Request) (*domain.Ticket, bool) {
	ticketId, err := app.readUUIDParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	ticket, err := app.ticketing.FindOne(r.Context(), ticketId)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return nil, false
	}

	if !canAccessTicket(app.contextGetUser(r), ticket.UserID) {
		app.notFoundResponse(w, r)
		return nil, false
	}

	return ticket, true
}

func canAccessTicket(user *domain.User, owner uuid.UUID) bool {
	return user.IsManager() || user.ID == owner
}
