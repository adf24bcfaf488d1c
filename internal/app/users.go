package app

import (
	"net/http"

	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	err := app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userId, err := app.readUUIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateRoleRequest

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

	user, err := app.accounts.UpdateRole(r.Context(), userId, domain.Role(input.Role))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
