package mocks

import (
	"context"

	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAvailabilityCache struct {
	mock.Mock
}

func (m *MockAvailabilityCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAvailabilityCache) Get(ctx context.Context, gen int64, filters domain.MovieFilters) ([]*domain.Movie, bool, error) {
	args := m.Called(ctx, gen, filters)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Movie), args.Bool(1), args.Error(2)
}

func (m *MockAvailabilityCache) Set(ctx context.Context, gen int64, filters domain.MovieFilters, movies []*domain.Movie) error {
	args := m.Called(ctx, gen, filters, movies)
	return args.Error(0)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
