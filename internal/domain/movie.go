package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	SortByTitle    = "title"
	SortByAgeLimit = "ageLimit"
	SortByID       = "id"

	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// sortColumns whitelists the movie fields a listing may be ordered by.
var sortColumns = map[string]string{
	SortByTitle:    "title",
	SortByAgeLimit: "age_limit",
	SortByID:       "id",
}

type Movie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AgeLimit    int       `json:"ageLimit"`
}

func NewMovie(title, description string, ageLimit int) *Movie {
	return &Movie{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		AgeLimit:    ageLimit,
	}
}

// MovieUpdate carries a partial update; nil fields are left untouched.
type MovieUpdate struct {
	Title       *string
	Description *string
	AgeLimit    *int
}

func (u MovieUpdate) Apply(movie *Movie) {
	if u.Title != nil {
		movie.Title = *u.Title
	}
	if u.Description != nil {
		movie.Description = *u.Description
	}
	if u.AgeLimit != nil {
		movie.AgeLimit = *u.AgeLimit
	}
}

type MovieFilters struct {
	MinAgeLimit *int
	SortBy      string
	Order       string
}

func DefaultMovieFilters() MovieFilters {
	return MovieFilters{
		SortBy: SortByTitle,
		Order:  OrderAsc,
	}
}

func (f MovieFilters) Validate() error {
	if _, ok := sortColumns[f.SortBy]; !ok {
		return ErrInvalidSort
	}

	switch strings.ToUpper(f.Order) {
	case OrderAsc, OrderDesc:
		return nil
	default:
		return ErrInvalidSort
	}
}

// SortColumn returns the storage column for SortBy. Callers must Validate first.
func (f MovieFilters) SortColumn() string {
	return sortColumns[f.SortBy]
}

func (f MovieFilters) SortDirection() string {
	if strings.ToUpper(f.Order) == OrderDesc {
		return OrderDesc
	}

	return OrderAsc
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	CreateMany(ctx context.Context, movies []*Movie) error
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, error)
	GetById(ctx context.Context, id uuid.UUID) (*Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}
