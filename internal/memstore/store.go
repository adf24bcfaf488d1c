// Package memstore implements every domain repository in process memory.
//
// Transactions are serialised: WithinTx holds the store lock for the duration of
// fn and restores a snapshot of all tables when fn fails. Repository calls made
// outside a transaction take the same lock per call, so each call is atomic.
package memstore

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type txKey struct{}

type Store struct {
	mu sync.Mutex

	users    map[uuid.UUID]domain.User
	movies   map[uuid.UUID]domain.Movie
	sessions map[uuid.UUID]domain.Session
	tickets  map[uuid.UUID]domain.Ticket

	// insertion order keeps listings deterministic
	movieOrder   []uuid.UUID
	sessionOrder []uuid.UUID
	ticketOrder  []uuid.UUID
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.User),
		movies:   make(map[uuid.UUID]domain.Movie),
		sessions: make(map[uuid.UUID]domain.Session),
		tickets:  make(map[uuid.UUID]domain.Ticket),
	}
}

// lock acquires the store lock unless ctx belongs to a running transaction,
// which already holds it.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) == s {
		return func() {}
	}

	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	users        map[uuid.UUID]domain.User
	movies       map[uuid.UUID]domain.Movie
	sessions     map[uuid.UUID]domain.Session
	tickets      map[uuid.UUID]domain.Ticket
	movieOrder   []uuid.UUID
	sessionOrder []uuid.UUID
	ticketOrder  []uuid.UUID
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:        maps.Clone(s.users),
		movies:       maps.Clone(s.movies),
		sessions:     maps.Clone(s.sessions),
		tickets:      maps.Clone(s.tickets),
		movieOrder:   append([]uuid.UUID(nil), s.movieOrder...),
		sessionOrder: append([]uuid.UUID(nil), s.sessionOrder...),
		ticketOrder:  append([]uuid.UUID(nil), s.ticketOrder...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.movies = snap.movies
	s.sessions = snap.sessions
	s.tickets = snap.tickets
	s.movieOrder = snap.movieOrder
	s.sessionOrder = snap.sessionOrder
	s.ticketOrder = snap.ticketOrder
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()

	err := fn(context.WithValue(ctx, txKey{}, s))
	if err != nil {
		s.restore(snap)
		return err
	}

	return nil
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Movies() *MovieRepository {
	return &MovieRepository{store: s}
}

func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{store: s}
}

func (s *Store) Tickets() *TicketRepository {
	return &TicketRepository{store: s}
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}

	return out
}

// deleteSessionLocked removes a session and its tickets. Caller holds the lock.
func (s *Store) deleteSessionLocked(id uuid.UUID) {
	delete(s.sessions, id)
	s.sessionOrder = removeID(s.sessionOrder, id)

	for ticketID, ticket := range s.tickets {
		if ticket.SessionID == id {
			delete(s.tickets, ticketID)
			s.ticketOrder = removeID(s.ticketOrder, ticketID)
		}
	}
}

func (s *Store) movieLocked(id uuid.UUID) *domain.Movie {
	movie, ok := s.movies[id]
	if !ok {
		return nil
	}

	return &movie
}
