package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

// Scheduling owns sessions and the booking transition.
type Scheduling struct {
	logger   *slog.Logger
	movies   domain.MovieRepository
	sessions domain.SessionRepository
	now      func() time.Time
}

func NewScheduling(logger *slog.Logger, movies domain.MovieRepository, sessions domain.SessionRepository) *Scheduling {
	return &Scheduling{
		logger:   logger,
		movies:   movies,
		sessions: sessions,
		now:      time.Now,
	}
}

// WithClock replaces the clock bulk scheduling uses to pick today's date.
func (s *Scheduling) WithClock(now func() time.Time) *Scheduling {
	s.now = now
	return s
}

// Create schedules a session. Uniqueness of (date, room, slot) is left to storage,
// which reports a duplicate as domain.ErrDuplicateSession.
func (s *Scheduling) Create(
	ctx context.Context,
	movieID uuid.UUID,
	date time.Time,
	roomNumber int,
	slot domain.TimeSlot) (*domain.Session, error) {

	if !slot.Valid() {
		return nil, domain.ErrInvalidTimeSlot
	}

	movie, err := s.movies.GetById(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, err)
	}

	session := domain.NewSession(movie, date, roomNumber, slot)

	err = s.sessions.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session scheduled",
		"session_id", session.ID,
		"movie_id", movieID,
		"room", roomNumber,
		"date", session.Date.Format(time.DateOnly),
		"slot", int(slot))

	return session, nil
}

// BulkCreate schedules one session per room for today, giving room i the slot i+1.
func (s *Scheduling) BulkCreate(ctx context.Context, movieID uuid.UUID, roomNumbers []int) ([]*domain.Session, error) {
	if len(roomNumbers) > domain.TimeSlotCount {
		return nil, domain.ErrTooManyRooms
	}

	movie, err := s.movies.GetById(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, err)
	}

	today := domain.CalendarDate(s.now().UTC())
	sessions := make([]*domain.Session, len(roomNumbers))

	for i, room := range roomNumbers {
		sessions[i] = domain.NewSession(movie, today, room, domain.TimeSlot(i+1))
	}

	err = s.sessions.CreateMany(ctx, sessions)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sessions bulk scheduled", "movie_id", movieID, "count", len(sessions))

	return sessions, nil
}

func (s *Scheduling) FindAll(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.GetAll(ctx)
}

func (s *Scheduling) FindById(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, err := s.sessions.GetById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return session, nil
}

// UpdateBookedStatus moves a session out of the unbooked state. A session that
// is already booked yields domain.ErrSessionAlreadyBooked; the check and the write
// happen in one storage operation.
func (s *Scheduling) UpdateBookedStatus(ctx context.Context, id uuid.UUID, booked bool) (*domain.Session, error) {
	session, err := s.sessions.UpdateBooked(ctx, id, booked)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return session, nil
}

func (s *Scheduling) GetBookedSessionsByMovieIds(ctx context.Context, movieIDs []uuid.UUID) ([]*domain.Session, error) {
	if len(movieIDs) == 0 {
		return []*domain.Session{}, nil
	}

	return s.sessions.GetBookedByMovieIds(ctx, movieIDs)
}
