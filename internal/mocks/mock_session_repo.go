package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type MockSessionRepo struct {
	domain.SessionRepository
	CreateFunc              func(ctx context.Context, session *domain.Session) error
	GetByIdFunc             func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	UpdateBookedFunc        func(ctx context.Context, id uuid.UUID, booked bool) (*domain.Session, error)
	GetBookedByMovieIdsFunc func(ctx context.Context, movieIds []uuid.UUID) ([]*domain.Session, error)
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	return m.CreateFunc(ctx, session)
}

func (m *MockSessionRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockSessionRepo) UpdateBooked(ctx context.Context, id uuid.UUID, booked bool) (*domain.Session, error) {
	return m.UpdateBookedFunc(ctx, id, booked)
}

func (m *MockSessionRepo) GetBookedByMovieIds(ctx context.Context, movieIds []uuid.UUID) ([]*domain.Session, error) {
	return m.GetBookedByMovieIdsFunc(ctx, movieIds)
}
