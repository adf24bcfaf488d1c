package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	availabilityGenerationKey = "movies:available:gen"
	DefaultAvailabilityTTL    = 5 * time.Minute
)

// AvailabilityCache stores listAvailable results in Redis. Entries are keyed by a
// generation number; Invalidate bumps the generation so every older entry is
// ignored and later expires on its own.
//
// Readers take the generation once with Generation, before querying storage,
// and pass it to Get and Set. A listing computed while a booking commits is then
// written under the generation it was read at, which Invalidate already retired.
type AvailabilityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewAvailabilityCache(client redis.UniversalClient, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}

	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

// Generation returns the current cache generation. A missing counter is
// generation 0.
func (c *AvailabilityCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, availabilityGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to read availability generation: %w", err)
	}

	return gen, nil
}

func (c *AvailabilityCache) Get(ctx context.Context, gen int64, filters domain.MovieFilters) ([]*domain.Movie, bool, error) {
	key := availabilityKey(gen, filters)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read availability cache: %w", err)
	}

	var movies []*domain.Movie

	err = json.Unmarshal(data, &movies)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode availability cache entry %s: %w", key, err)
	}

	return movies, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, gen int64, filters domain.MovieFilters, movies []*domain.Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, availabilityKey(gen, filters), data, c.ttl).Err()
}

func (c *AvailabilityCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, availabilityGenerationKey).Err()
}

func availabilityKey(gen int64, filters domain.MovieFilters) string {
	minAge := "-"
	if filters.MinAgeLimit != nil {
		minAge = strconv.Itoa(*filters.MinAgeLimit)
	}

	return fmt.Sprintf("movies:available:%d:%s:%s:%s", gen, minAge, filters.SortBy, filters.SortDirection())
}
