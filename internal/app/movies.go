package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/metinatakli/cinema-ticketing/internal/service"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, err := readGetMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, err := app.catalog.ListAvailable(r.Context(), toMovieFilters(params))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: toMovieResponses(movies),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func readGetMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	var params api.GetMoviesParams

	query := r.URL.Query()

	if v := query.Get("ageLimit"); v != "" {
		ageLimit, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("ageLimit must be an integer")
		}
		params.AgeLimit = &ageLimit
	}

	if v := query.Get("sortBy"); v != "" {
		params.SortBy = &v
	}

	if v := query.Get("order"); v != "" {
		params.Order = &v
	}

	return params, nil
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.DefaultMovieFilters()

	filters.MinAgeLimit = params.AgeLimit

	if params.SortBy != nil {
		filters.SortBy = *params.SortBy
	}
	if params.Order != nil {
		filters.Order = *params.Order
	}

	return filters
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readUUIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.catalog.FindById(r.Context(), movieId)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

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

	movie, err := app.catalog.CreateMovie(r.Context(), input.Title, input.Description, input.AgeLimit)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/movies/%s", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) BulkCreateMovies(w http.ResponseWriter, r *http.Request) {
	var input api.BulkCreateMoviesRequest

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

	inputs := make([]service.MovieInput, len(input.Movies))
	for i, m := range input.Movies {
		inputs[i] = service.MovieInput{
			Title:       m.Title,
			Description: m.Description,
			AgeLimit:    m.AgeLimit,
		}
	}

	movies, err := app.catalog.BulkCreateMovies(r.Context(), inputs)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: toMovieResponses(movies),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readUUIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateMovieRequest

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

	update := domain.MovieUpdate{
		Title:       input.Title,
		Description: input.Description,
		AgeLimit:    input.AgeLimit,
	}

	movie, err := app.catalog.UpdateMovie(r.Context(), movieId, update)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readUUIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.catalog.DeleteMovie(r.Context(), movieId)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("movie deleted", "movie_id", movieId)

	w.WriteHeader(http.StatusNoContent)
}
