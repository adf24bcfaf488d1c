package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	CreateFunc     func(ctx context.Context, movie *domain.Movie) error
	CreateManyFunc func(ctx context.Context, movies []*domain.Movie) error
	GetAllFunc     func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error)
	GetByIdFunc    func(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	UpdateFunc     func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) CreateMany(ctx context.Context, movies []*domain.Movie) error {
	return m.CreateManyFunc(ctx, movies)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
