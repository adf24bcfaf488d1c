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

const ticketColumns = `t.id, t.user_id, t.session_id, t.purchased_at, t.used`

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `INSERT INTO tickets (id, user_id, session_id)
		VALUES ($1, $2, $3)
		RETURNING purchased_at, used`

	err := conn(ctx, p.db).QueryRow(ctx, query, ticket.ID, ticket.UserID, ticket.SessionID).
		Scan(&ticket.PurchasedAt, &ticket.Used)

	switch pgErrorCode(err) {
	case pgerrcode.UniqueViolation:
		return domain.ErrSessionAlreadyBooked
	case pgerrcode.ForeignKeyViolation:
		return domain.ErrRecordNotFound
	}

	return err
}

func (p *PostgresTicketRepository) GetAll(ctx context.Context) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t ORDER BY t.purchased_at`

	rows, err := conn(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []*domain.Ticket{}

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.SessionID,
			&ticket.PurchasedAt,
			&ticket.Used,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, &ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresTicketRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `,
			u.id, u.username, u.age, u.role, u.created_at
		FROM tickets t
		JOIN users u ON t.user_id = u.id
		WHERE t.id = $1`

	var ticket domain.Ticket
	var user domain.User

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.SessionID,
		&ticket.PurchasedAt,
		&ticket.Used,
		&user.ID,
		&user.Username,
		&user.Age,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	ticket.User = &user

	return &ticket, nil
}

func (p *PostgresTicketRepository) MarkUsed(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `UPDATE tickets t
		SET used = true
		WHERE t.id = $1
		RETURNING ` + ticketColumns

	var ticket domain.Ticket

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.SessionID,
		&ticket.PurchasedAt,
		&ticket.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

func (p *PostgresTicketRepository) GetUsedByUserId(ctx context.Context, userId uuid.UUID) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `, ` + sessionWithMovieColumns + `
		FROM tickets t
		JOIN sessions s ON t.session_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE t.user_id = $1 AND t.used = true
		ORDER BY t.purchased_at`

	rows, err := conn(ctx, p.db).Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []*domain.Ticket{}

	for rows.Next() {
		var ticket domain.Ticket
		var session domain.Session
		var movie domain.Movie

		err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.SessionID,
			&ticket.PurchasedAt,
			&ticket.Used,
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
		ticket.Session = &session
		tickets = append(tickets, &ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
