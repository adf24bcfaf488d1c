package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

// AvailabilityCache caches listAvailable results per generation. Invalidate
// starts a new generation; entries of older generations are never returned.
type AvailabilityCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, filters domain.MovieFilters) ([]*domain.Movie, bool, error)
	Set(ctx context.Context, gen int64, filters domain.MovieFilters, movies []*domain.Movie) error
	Invalidate(ctx context.Context) error
}

type noopCache struct{}

func (noopCache) Generation(context.Context) (int64, error) { return 0, nil }

func (noopCache) Get(context.Context, int64, domain.MovieFilters) ([]*domain.Movie, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, int64, domain.MovieFilters, []*domain.Movie) error { return nil }

func (noopCache) Invalidate(context.Context) error { return nil }

type bookedSessionReader interface {
	GetBookedSessionsByMovieIds(ctx context.Context, movieIDs []uuid.UUID) ([]*domain.Session, error)
}

type Catalog struct {
	logger     *slog.Logger
	movies     domain.MovieRepository
	scheduling bookedSessionReader
	cache      AvailabilityCache
}

// NewCatalog builds the catalog. A nil cache disables caching.
func NewCatalog(
	logger *slog.Logger,
	movies domain.MovieRepository,
	scheduling bookedSessionReader,
	cache AvailabilityCache) *Catalog {

	if cache == nil {
		cache = noopCache{}
	}

	return &Catalog{
		logger:     logger,
		movies:     movies,
		scheduling: scheduling,
		cache:      cache,
	}
}

func (c *Catalog) CreateMovie(ctx context.Context, title, description string, ageLimit int) (*domain.Movie, error) {
	movie := domain.NewMovie(title, description, ageLimit)

	err := c.movies.Create(ctx, movie)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)

	return movie, nil
}

type MovieInput struct {
	Title       string
	Description string
	AgeLimit    int
}

func (c *Catalog) BulkCreateMovies(ctx context.Context, inputs []MovieInput) ([]*domain.Movie, error) {
	movies := make([]*domain.Movie, len(inputs))
	for i, in := range inputs {
		movies[i] = domain.NewMovie(in.Title, in.Description, in.AgeLimit)
	}

	err := c.movies.CreateMany(ctx, movies)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)

	return movies, nil
}

// ListAvailable returns the movies matching filters that still have at least one
// of the seven time slots without a booked session. Booked slots are counted
// across every room and date of the movie.
func (c *Catalog) ListAvailable(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	err := filters.Validate()
	if err != nil {
		return nil, err
	}

	// The generation is read before storage so a booking committed during the
	// query retires the entry this call writes.
	gen, err := c.cache.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		c.logger.Warn("availability cache generation read failed", "error", err)
	} else {
		cached, ok, err := c.cache.Get(ctx, gen, filters)
		if err != nil {
			c.logger.Warn("availability cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	movies, err := c.movies.GetAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	movieIDs := make([]uuid.UUID, len(movies))
	for i, movie := range movies {
		movieIDs[i] = movie.ID
	}

	booked, err := c.scheduling.GetBookedSessionsByMovieIds(ctx, movieIDs)
	if err != nil {
		return nil, err
	}

	available := filterAvailable(movies, booked)

	if cacheable {
		err = c.cache.Set(ctx, gen, filters, available)
		if err != nil {
			c.logger.Warn("availability cache write failed", "error", err)
		}
	}

	return available, nil
}

// filterAvailable keeps the order of movies.
func filterAvailable(movies []*domain.Movie, booked []*domain.Session) []*domain.Movie {
	bookedSlots := make(map[uuid.UUID]map[domain.TimeSlot]struct{})

	for _, session := range booked {
		slots, ok := bookedSlots[session.MovieID]
		if !ok {
			slots = make(map[domain.TimeSlot]struct{})
			bookedSlots[session.MovieID] = slots
		}

		slots[session.TimeSlot] = struct{}{}
	}

	available := make([]*domain.Movie, 0, len(movies))

	for _, movie := range movies {
		slots := bookedSlots[movie.ID]

		for _, slot := range domain.AllTimeSlots {
			if _, taken := slots[slot]; !taken {
				available = append(available, movie)
				break
			}
		}
	}

	return available
}

func (c *Catalog) FindById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	movie, err := c.movies.GetById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", id, err)
	}

	return movie, nil
}

func (c *Catalog) UpdateMovie(ctx context.Context, id uuid.UUID, update domain.MovieUpdate) (*domain.Movie, error) {
	movie, err := c.movies.GetById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", id, err)
	}

	update.Apply(movie)

	err = c.movies.Update(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", id, err)
	}

	c.invalidate(ctx)

	return movie, nil
}

// DeleteMovie removes the movie together with its sessions and their tickets.
func (c *Catalog) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	err := c.movies.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("movie %s: %w", id, err)
	}

	c.invalidate(ctx)

	return nil
}

func (c *Catalog) invalidate(ctx context.Context) {
	err := c.cache.Invalidate(ctx)
	if err != nil {
		c.logger.Warn("availability cache invalidation failed", "error", err)
	}
}
