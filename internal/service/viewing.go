package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type Viewing struct {
	tickets *Ticketing
}

func NewViewing(tickets *Ticketing) *Viewing {
	return &Viewing{
		tickets: tickets,
	}
}

func (v *Viewing) WatchMovie(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	return v.tickets.UpdateUsedById(ctx, ticketID)
}

func (v *Viewing) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	return v.tickets.GetWatchHistory(ctx, userID)
}
