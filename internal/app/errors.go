package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/metinatakli/cinema-ticketing/internal/jsonutil"
	appvalidator "github.com/metinatakli/cinema-ticketing/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrUnauthorized       = "You must be authenticated to access this resource"
	ErrInvalidCredentials = "Invalid username or password"
	ErrForbidden          = "Your account does not have the permissions to access this resource"
	ErrFailedValidation   = "One or more fields have invalid values"
)

// domainErrors is searched in order to pick the client facing message of a
// wrapped domain error.
var domainErrors = []error{
	domain.ErrSessionAlreadyBooked,
	domain.ErrDuplicateSession,
	domain.ErrUserAlreadyExists,
	domain.ErrInvalidTimeSlot,
	domain.ErrTooManyRooms,
	domain.ErrInvalidSort,
	domain.ErrInvalidRole,
}

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := jsonutil.WriteJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorized)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbidden)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, len(validationErrors)),
	}

	for i, fe := range validationErrors {
		resp.ValidationErrors[i] = api.ValidationError{
			Field: fe.Field(),
			Issue: appvalidator.ValidationMessage(fe),
		}
	}

	err = jsonutil.WriteJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// serviceErrorResponse maps an error returned by a service to its HTTP status.
func (app *Application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrInvalidCredentials):
		app.invalidCredentialsResponse(w, r)
	case domain.IsConflict(err):
		app.contextGetLogger(r).Warn("request conflicts with current state", "error", err)
		app.errorResponse(w, r, http.StatusConflict, domainMessage(err))
	case domain.IsValidation(err):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, domainMessage(err))
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func domainMessage(err error) string {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return err.Error()
}
