package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

func (app *Application) GetSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := app.scheduling.FindAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SessionListResponse{
		Sessions: toSessionResponses(sessions),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSessionById(w http.ResponseWriter, r *http.Request) {
	sessionId, err := app.readUUIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.scheduling.FindById(r.Context(), sessionId)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input api.CreateSessionRequest

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

	session, err := app.scheduling.Create(
		r.Context(),
		input.MovieId,
		input.Date.Time,
		input.RoomNumber,
		domain.TimeSlot(input.TimeSlot),
	)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/sessions/%s", session.ID))

	err = app.writeJSON(w, http.StatusCreated, toSessionResponse(session), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) BulkCreateSessions(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readUUIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.BulkCreateSessionsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sessions, err := app.scheduling.BulkCreate(r.Context(), movieId, input.RoomNumbers)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	resp := api.SessionListResponse{
		Sessions: toSessionResponses(sessions),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
