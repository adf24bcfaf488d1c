package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (id, title, description, age_limit)
		VALUES ($1, $2, $3, $4)`

	_, err := conn(ctx, p.db).Exec(ctx, query, movie.ID, movie.Title, movie.Description, movie.AgeLimit)

	return err
}

func (p *PostgresMovieRepository) CreateMany(ctx context.Context, movies []*domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(movies))
	for _, movie := range movies {
		rows = append(rows, []any{
			movie.ID,
			movie.Title,
			movie.Description,
			movie.AgeLimit,
		})
	}

	_, err := conn(ctx, p.db).CopyFrom(
		ctx,
		pgx.Identifier{"movies"},
		[]string{"id", "title", "description", "age_limit"},
		pgx.CopyFromRows(rows),
	)

	return err
}

// GetAll relies on filters having passed Validate; the sort column is interpolated.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT id, title, description, age_limit
		FROM movies
		WHERE ($1::int IS NULL OR age_limit >= $1)
		ORDER BY %s %s, id ASC`, filters.SortColumn(), filters.SortDirection())

	rows, err := conn(ctx, p.db).Query(ctx, query, filters.MinAgeLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.AgeLimit,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	query := `SELECT id, title, description, age_limit FROM movies WHERE id = $1`

	var movie domain.Movie

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.AgeLimit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $2, description = $3, age_limit = $4
		WHERE id = $1`

	tag, err := conn(ctx, p.db).Exec(ctx, query, movie.ID, movie.Title, movie.Description, movie.AgeLimit)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
