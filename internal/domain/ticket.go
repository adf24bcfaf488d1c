package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	SessionID   uuid.UUID `json:"sessionId"`
	PurchasedAt time.Time `json:"purchasedAt"`
	Used        bool      `json:"used"`
	User        *User     `json:"-"`
	Session     *Session  `json:"session,omitempty"`
}

func NewTicket(user *User, session *Session) *Ticket {
	return &Ticket{
		ID:        uuid.New(),
		UserID:    user.ID,
		SessionID: session.ID,
		User:      user,
		Session:   session,
	}
}

type TicketRepository interface {
	// Create persists the ticket and fills PurchasedAt.
	Create(ctx context.Context, ticket *Ticket) error
	GetAll(ctx context.Context) ([]*Ticket, error)
	GetById(ctx context.Context, id uuid.UUID) (*Ticket, error)
	MarkUsed(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetUsedByUserId(ctx context.Context, userId uuid.UUID) ([]*Ticket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
