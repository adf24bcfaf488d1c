package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const meterName = "github.com/metinatakli/cinema-ticketing/internal/service"

type bookingTransition interface {
	FindById(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	UpdateBookedStatus(ctx context.Context, id uuid.UUID, booked bool) (*domain.Session, error)
}

type Ticketing struct {
	logger     *slog.Logger
	tx         domain.Transactor
	tickets    domain.TicketRepository
	users      domain.UserRepository
	scheduling bookingTransition
	cache      AvailabilityCache
	bookings   metric.Int64Counter
}

func NewTicketing(
	logger *slog.Logger,
	tx domain.Transactor,
	tickets domain.TicketRepository,
	users domain.UserRepository,
	scheduling bookingTransition,
	cache AvailabilityCache) *Ticketing {

	if cache == nil {
		cache = noopCache{}
	}

	bookings, err := otel.Meter(meterName).Int64Counter(
		"ticket.bookings",
		metric.WithDescription("Ticket booking attempts by outcome"),
	)
	if err != nil {
		logger.Warn("failed to create booking counter", "error", err)
	}

	return &Ticketing{
		logger:     logger,
		tx:         tx,
		tickets:    tickets,
		users:      users,
		scheduling: scheduling,
		cache:      cache,
		bookings:   bookings,
	}
}

// Create books the session for the user. The booking transition and the ticket
// insert commit together; when either fails neither is kept.
func (t *Ticketing) Create(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Ticket, error) {
	var (
		user    *domain.User
		session *domain.Session
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		user, err = t.users.GetById(gctx, userID)
		if err != nil {
			return fmt.Errorf("user %s: %w", userID, err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		session, err = t.scheduling.FindById(gctx, sessionID)
		return err
	})

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	ticket := domain.NewTicket(user, session)

	err = t.tx.WithinTx(ctx, func(ctx context.Context) error {
		booked, err := t.scheduling.UpdateBookedStatus(ctx, sessionID, true)
		if err != nil {
			return err
		}

		session.Booked = booked.Booked

		return t.tickets.Create(ctx, ticket)
	})
	if err != nil {
		t.recordBooking(ctx, outcomeOf(err))
		return nil, err
	}

	t.recordBooking(ctx, "booked")

	err = t.cache.Invalidate(ctx)
	if err != nil {
		t.logger.Warn("availability cache invalidation failed", "error", err)
	}

	t.logger.Info("ticket booked", "ticket_id", ticket.ID, "session_id", sessionID, "user_id", userID)

	return ticket, nil
}

func outcomeOf(err error) string {
	switch {
	case domain.IsConflict(err):
		return "conflict"
	default:
		return "error"
	}
}

func (t *Ticketing) recordBooking(ctx context.Context, outcome string) {
	if t.bookings == nil {
		return
	}

	t.bookings.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (t *Ticketing) FindAll(ctx context.Context) ([]*domain.Ticket, error) {
	return t.tickets.GetAll(ctx)
}

func (t *Ticketing) FindOne(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	ticket, err := t.tickets.GetById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", id, err)
	}

	return ticket, nil
}

// UpdateUsedById marks the ticket used. Repeating the call is a no-op.
func (t *Ticketing) UpdateUsedById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	ticket, err := t.tickets.MarkUsed(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", id, err)
	}

	return ticket, nil
}

func (t *Ticketing) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	return t.tickets.GetUsedByUserId(ctx, userID)
}

// Remove deletes the ticket. The session keeps its booked flag.
func (t *Ticketing) Remove(ctx context.Context, id uuid.UUID) error {
	err := t.tickets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("ticket %s: %w", id, err)
	}

	return nil
}
