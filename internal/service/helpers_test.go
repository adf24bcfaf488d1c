package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/metinatakli/cinema-ticketing/internal/memstore"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 8, 21, 15, 30, 0, 0, time.UTC)

type testServices struct {
	store      *memstore.Store
	catalog    *Catalog
	scheduling *Scheduling
	ticketing  *Ticketing
	viewing    *Viewing
	accounts   *Accounts
	nextRoom   int
}

func newTestServices(cache AvailabilityCache) *testServices {
	logger := discardLogger()
	store := memstore.New()

	scheduling := NewScheduling(logger, store.Movies(), store.Sessions()).
		WithClock(func() time.Time { return fixedNow })
	catalog := NewCatalog(logger, store.Movies(), scheduling, cache)
	ticketing := NewTicketing(logger, store, store.Tickets(), store.Users(), scheduling, cache)

	return &testServices{
		store:      store,
		catalog:    catalog,
		scheduling: scheduling,
		ticketing:  ticketing,
		viewing:    NewViewing(ticketing),
		accounts:   NewAccounts(logger, store.Users()),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *testServices) createMovie(t *testing.T, title string, ageLimit int) *domain.Movie {
	t.Helper()

	movie, err := s.catalog.CreateMovie(context.Background(), title, title+" description", ageLimit)
	require.NoError(t, err)

	return movie
}

// createUser skips password hashing to keep tests fast.
func (s *testServices) createUser(t *testing.T, username string) *domain.User {
	t.Helper()

	user := domain.NewUser(username, 30)
	require.NoError(t, s.store.Users().Create(context.Background(), user))

	return user
}

func (s *testServices) createSession(t *testing.T, movie *domain.Movie, room int, slot domain.TimeSlot) *domain.Session {
	t.Helper()

	session, err := s.scheduling.Create(context.Background(), movie.ID, fixedNow, room, slot)
	require.NoError(t, err)

	return session
}

func (s *testServices) bookSlots(t *testing.T, movie *domain.Movie, slots ...domain.TimeSlot) {
	t.Helper()

	for _, slot := range slots {
		s.nextRoom++
		session := s.createSession(t, movie, 100+s.nextRoom, slot)
		_, err := s.scheduling.UpdateBookedStatus(context.Background(), session.ID, true)
		require.NoError(t, err)
	}
}

func movieIDs(movies []*domain.Movie) []string {
	ids := make([]string, len(movies))
	for i, m := range movies {
		ids[i] = m.ID.String()
	}

	return ids
}

func ptr[T any](v T) *T {
	return &v
}
