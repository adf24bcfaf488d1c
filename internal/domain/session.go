package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeSlot is one of the seven fixed two-hour screening windows of a day.
type TimeSlot int

const (
	SlotMorning TimeSlot = iota + 1
	SlotNoon
	SlotEarlyAfternoon
	SlotLateAfternoon
	SlotEarlyEvening
	SlotEvening
	SlotLate
)

const (
	TimeSlotCount      = 7
	firstSlotStartHour = 10
	slotHours          = 2
)

// AllTimeSlots lists every slot in ascending order.
var AllTimeSlots = []TimeSlot{
	SlotMorning,
	SlotNoon,
	SlotEarlyAfternoon,
	SlotLateAfternoon,
	SlotEarlyEvening,
	SlotEvening,
	SlotLate,
}

func (s TimeSlot) Valid() bool {
	return s >= SlotMorning && s <= SlotLate
}

// StartHour is the hour of day the slot begins at.
func (s TimeSlot) StartHour() int {
	return firstSlotStartHour + (int(s)-1)*slotHours
}

func (s TimeSlot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TimeSlot(%d)", int(s))
	}

	start := s.StartHour()
	end := (start + slotHours) % 24

	return fmt.Sprintf("%02d:00-%02d:00", start, end)
}

type Session struct {
	ID         uuid.UUID `json:"id"`
	MovieID    uuid.UUID `json:"movieId"`
	Movie      *Movie    `json:"movie,omitempty"`
	RoomNumber int       `json:"roomNumber"`
	Date       time.Time `json:"date"`
	TimeSlot   TimeSlot  `json:"timeSlot"`
	Booked     bool      `json:"booked"`
}

func NewSession(movie *Movie, date time.Time, roomNumber int, slot TimeSlot) *Session {
	return &Session{
		ID:         uuid.New(),
		MovieID:    movie.ID,
		Movie:      movie,
		RoomNumber: roomNumber,
		Date:       CalendarDate(date),
		TimeSlot:   slot,
	}
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	CreateMany(ctx context.Context, sessions []*Session) error
	GetAll(ctx context.Context) ([]*Session, error)
	GetById(ctx context.Context, id uuid.UUID) (*Session, error)
	// UpdateBooked sets the booked flag only while it is still false. It returns
	// ErrRecordNotFound for an unknown id and ErrSessionAlreadyBooked otherwise.
	UpdateBooked(ctx context.Context, id uuid.UUID, booked bool) (*Session, error)
	GetBookedByMovieIds(ctx context.Context, movieIds []uuid.UUID) ([]*Session, error)
}
