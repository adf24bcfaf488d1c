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

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, password_hash, age, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := conn(ctx, p.db).QueryRow(ctx,
		query,
		user.ID,
		user.Username,
		user.Password.Hash,
		user.Age,
		user.Role).Scan(&user.CreatedAt)

	if err != nil {
		if pgErrorCode(err) == pgerrcode.UniqueViolation {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, username, password_hash, age, role, created_at
		FROM users
		WHERE id = $1`

	return p.getUser(ctx, query, id)
}

func (p *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, age, role, created_at
		FROM users
		WHERE username = $1`

	return p.getUser(ctx, query, username)
}

func (p *PostgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	query := `UPDATE users
		SET role = $2
		WHERE id = $1
		RETURNING id, username, password_hash, age, role, created_at`

	return p.getUser(ctx, query, id, role)
}

func (p *PostgresUserRepository) getUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User

	err := conn(ctx, p.db).QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Password.Hash,
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

	return &user, nil
}
