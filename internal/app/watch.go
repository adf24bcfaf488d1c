package app

import (
	"net/http"

	"github.com/metinatakli/cinema-ticketing/api"
)

func (app *Application) WatchMovie(w http.ResponseWriter, r *http.Request) {
	ticket, ok := app.loadOwnTicket(w, r)
	if !ok {
		return
	}

	used, err := app.viewing.WatchMovie(r.Context(), ticket.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("movie watched", "ticket_id", used.ID, "session_id", used.SessionID)

	err = app.writeJSON(w, http.StatusOK, toTicketResponse(used), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetWatchHistory(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	tickets, err := app.viewing.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TicketListResponse{
		Tickets: toTicketResponses(tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
