package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return domain.ErrUserAlreadyExists
		}
	}

	user.CreatedAt = time.Now().UTC()
	r.store.users[user.ID] = *user

	return nil
}

func (r *UserRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	defer r.store.lock(ctx)()

	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.store.lock(ctx)()

	for _, user := range r.store.users {
		if user.Username == username {
			return &user, nil
		}
	}

	return nil, domain.ErrRecordNotFound
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	defer r.store.lock(ctx)()

	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	user.Role = role
	r.store.users[id] = user

	return &user, nil
}

type MovieRepository struct {
	store *Store
}

func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	defer r.store.lock(ctx)()

	r.store.movies[movie.ID] = *movie
	r.store.movieOrder = append(r.store.movieOrder, movie.ID)

	return nil
}

func (r *MovieRepository) CreateMany(ctx context.Context, movies []*domain.Movie) error {
	defer r.store.lock(ctx)()

	for _, movie := range movies {
		r.store.movies[movie.ID] = *movie
		r.store.movieOrder = append(r.store.movieOrder, movie.ID)
	}

	return nil
}

func (r *MovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	defer r.store.lock(ctx)()

	movies := []*domain.Movie{}

	for _, id := range r.store.movieOrder {
		movie := r.store.movies[id]
		if filters.MinAgeLimit != nil && movie.AgeLimit < *filters.MinAgeLimit {
			continue
		}

		movies = append(movies, &movie)
	}

	slices.SortStableFunc(movies, func(a, b *domain.Movie) int {
		var c int

		switch filters.SortBy {
		case domain.SortByAgeLimit:
			c = cmp.Compare(a.AgeLimit, b.AgeLimit)
		case domain.SortByID:
			c = strings.Compare(a.ID.String(), b.ID.String())
		default:
			c = strings.Compare(a.Title, b.Title)
		}

		if filters.SortDirection() == domain.OrderDesc {
			c = -c
		}

		if c == 0 {
			c = strings.Compare(a.ID.String(), b.ID.String())
		}

		return c
	})

	return movies, nil
}

func (r *MovieRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	defer r.store.lock(ctx)()

	movie := r.store.movieLocked(id)
	if movie == nil {
		return nil, domain.ErrRecordNotFound
	}

	return movie, nil
}

func (r *MovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.movies[movie.ID]; !ok {
		return domain.ErrRecordNotFound
	}

	r.store.movies[movie.ID] = *movie

	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.movies[id]; !ok {
		return domain.ErrRecordNotFound
	}

	delete(r.store.movies, id)
	r.store.movieOrder = removeID(r.store.movieOrder, id)

	for sessionID, session := range r.store.sessions {
		if session.MovieID == id {
			r.store.deleteSessionLocked(sessionID)
		}
	}

	return nil
}

type SessionRepository struct {
	store *Store
}

func (r *SessionRepository) insertLocked(session *domain.Session) error {
	if _, ok := r.store.movies[session.MovieID]; !ok {
		return domain.ErrRecordNotFound
	}

	for _, existing := range r.store.sessions {
		if existing.Date.Equal(session.Date) &&
			existing.RoomNumber == session.RoomNumber &&
			existing.TimeSlot == session.TimeSlot {
			return domain.ErrDuplicateSession
		}
	}

	stored := *session
	stored.Movie = nil
	r.store.sessions[session.ID] = stored
	r.store.sessionOrder = append(r.store.sessionOrder, session.ID)

	return nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	defer r.store.lock(ctx)()

	return r.insertLocked(session)
}

// CreateMany inserts all sessions or none.
func (r *SessionRepository) CreateMany(ctx context.Context, sessions []*domain.Session) error {
	defer r.store.lock(ctx)()

	snap := r.store.snapshot()

	for _, session := range sessions {
		if err := r.insertLocked(session); err != nil {
			r.store.restore(snap)
			return err
		}
	}

	return nil
}

func (r *SessionRepository) withMovieLocked(session domain.Session) *domain.Session {
	session.Movie = r.store.movieLocked(session.MovieID)
	return &session
}

func (r *SessionRepository) GetAll(ctx context.Context) ([]*domain.Session, error) {
	defer r.store.lock(ctx)()

	sessions := make([]*domain.Session, 0, len(r.store.sessionOrder))
	for _, id := range r.store.sessionOrder {
		sessions = append(sessions, r.withMovieLocked(r.store.sessions[id]))
	}

	return sessions, nil
}

func (r *SessionRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	defer r.store.lock(ctx)()

	session, ok := r.store.sessions[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return r.withMovieLocked(session), nil
}

func (r *SessionRepository) UpdateBooked(ctx context.Context, id uuid.UUID, booked bool) (*domain.Session, error) {
	defer r.store.lock(ctx)()

	session, ok := r.store.sessions[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	if session.Booked {
		return nil, domain.ErrSessionAlreadyBooked
	}

	session.Booked = booked
	r.store.sessions[id] = session

	return &session, nil
}

func (r *SessionRepository) GetBookedByMovieIds(ctx context.Context, movieIds []uuid.UUID) ([]*domain.Session, error) {
	defer r.store.lock(ctx)()

	sessions := []*domain.Session{}

	for _, id := range r.store.sessionOrder {
		session := r.store.sessions[id]
		if session.Booked && slices.Contains(movieIds, session.MovieID) {
			sessions = append(sessions, r.withMovieLocked(session))
		}
	}

	return sessions, nil
}

type TicketRepository struct {
	store *Store
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.users[ticket.UserID]; !ok {
		return domain.ErrRecordNotFound
	}

	if _, ok := r.store.sessions[ticket.SessionID]; !ok {
		return domain.ErrRecordNotFound
	}

	for _, existing := range r.store.tickets {
		if existing.SessionID == ticket.SessionID {
			return domain.ErrSessionAlreadyBooked
		}
	}

	ticket.PurchasedAt = time.Now().UTC()
	ticket.Used = false

	stored := *ticket
	stored.User = nil
	stored.Session = nil
	r.store.tickets[ticket.ID] = stored
	r.store.ticketOrder = append(r.store.ticketOrder, ticket.ID)

	return nil
}

func (r *TicketRepository) GetAll(ctx context.Context) ([]*domain.Ticket, error) {
	defer r.store.lock(ctx)()

	tickets := make([]*domain.Ticket, 0, len(r.store.ticketOrder))
	for _, id := range r.store.ticketOrder {
		ticket := r.store.tickets[id]
		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}

func (r *TicketRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	defer r.store.lock(ctx)()

	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	if user, ok := r.store.users[ticket.UserID]; ok {
		ticket.User = &user
	}

	return &ticket, nil
}

func (r *TicketRepository) MarkUsed(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	defer r.store.lock(ctx)()

	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	ticket.Used = true
	r.store.tickets[id] = ticket

	return &ticket, nil
}

func (r *TicketRepository) GetUsedByUserId(ctx context.Context, userId uuid.UUID) ([]*domain.Ticket, error) {
	defer r.store.lock(ctx)()

	tickets := []*domain.Ticket{}

	for _, id := range r.store.ticketOrder {
		ticket := r.store.tickets[id]
		if ticket.UserID != userId || !ticket.Used {
			continue
		}

		session := r.store.sessions[ticket.SessionID]
		session.Movie = r.store.movieLocked(session.MovieID)
		ticket.Session = &session

		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.tickets[id]; !ok {
		return domain.ErrRecordNotFound
	}

	delete(r.store.tickets, id)
	r.store.ticketOrder = removeID(r.store.ticketOrder, id)

	return nil
}
