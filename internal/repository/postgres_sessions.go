package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

const sessionWithMovieColumns = `
	s.id, s.movie_id, s.room_number, s.session_date, s.time_slot, s.booked,
	m.id, m.title, m.description, m.age_limit`

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `INSERT INTO sessions (id, movie_id, room_number, session_date, time_slot)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING booked`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		session.ID,
		session.MovieID,
		session.RoomNumber,
		session.Date,
		session.TimeSlot,
	).Scan(&session.Booked)

	return mapSessionWriteError(err)
}

func (p *PostgresSessionRepository) CreateMany(ctx context.Context, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, []any{
			session.ID,
			session.MovieID,
			session.RoomNumber,
			session.Date,
			int16(session.TimeSlot),
			session.Booked,
		})
	}

	_, err := conn(ctx, p.db).CopyFrom(
		ctx,
		pgx.Identifier{"sessions"},
		[]string{"id", "movie_id", "room_number", "session_date", "time_slot", "booked"},
		pgx.CopyFromRows(rows),
	)

	return mapSessionWriteError(err)
}

func mapSessionWriteError(err error) error {
	switch pgErrorCode(err) {
	case "":
		return err
	case pgerrcode.UniqueViolation:
		return domain.ErrDuplicateSession
	case pgerrcode.ForeignKeyViolation:
		return domain.ErrRecordNotFound
	default:
		return err
	}
}

func (p *PostgresSessionRepository) GetAll(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionWithMovieColumns + `
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		ORDER BY s.session_date, s.time_slot, s.room_number`

	rows, err := conn(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return collectSessions(rows)
}

func (p *PostgresSessionRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := `SELECT ` + sessionWithMovieColumns + `
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1`

	session, err := scanSession(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return session, nil
}

// UpdateBooked is a single conditional write. Concurrent callers serialise on the
// row lock; the loser re-evaluates the predicate after the winner commits and
// matches no row.
func (p *PostgresSessionRepository) UpdateBooked(ctx context.Context, id uuid.UUID, booked bool) (*domain.Session, error) {
	query := `UPDATE sessions
		SET booked = $2
		WHERE id = $1 AND booked = false
		RETURNING id, movie_id, room_number, session_date, time_slot, booked`

	q := conn(ctx, p.db)

	var session domain.Session

	err := q.QueryRow(ctx, query, id, booked).Scan(
		&session.ID,
		&session.MovieID,
		&session.RoomNumber,
		&session.Date,
		&session.TimeSlot,
		&session.Booked,
	)
	if err == nil {
		return &session, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool

	err = q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrRecordNotFound
	}

	return nil, domain.ErrSessionAlreadyBooked
}

func (p *PostgresSessionRepository) GetBookedByMovieIds(ctx context.Context, movieIds []uuid.UUID) ([]*domain.Session, error) {
	if len(movieIds) == 0 {
		return []*domain.Session{}, nil
	}

	query := `SELECT ` + sessionWithMovieColumns + `
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.booked = true AND s.movie_id = ANY($1)`

	rows, err := conn(ctx, p.db).Query(ctx, query, movieIds)
	if err != nil {
		return nil, err
	}

	return collectSessions(rows)
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var session domain.Session
	var movie domain.Movie

	err := row.Scan(
		&session.ID,
		&session.MovieID,
		&session.RoomNumber,
		&session.Date,
		&session.TimeSlot,
		&session.Booked,
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.AgeLimit,
	)
	if err != nil {
		return nil, err
	}

	session.Movie = &movie

	return &session, nil
}

func collectSessions(rows pgx.Rows) ([]*domain.Session, error) {
	defer rows.Close()

	sessions := []*domain.Session{}

	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
