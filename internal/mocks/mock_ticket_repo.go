package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type MockTicketRepo struct {
	domain.TicketRepository
	CreateFunc   func(ctx context.Context, ticket *domain.Ticket) error
	GetByIdFunc  func(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	MarkUsedFunc func(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	return m.CreateFunc(ctx, ticket)
}

func (m *MockTicketRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockTicketRepo) MarkUsed(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	return m.MarkUsedFunc(ctx, id)
}

func (m *MockTicketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
