package integration_test

import (
	"log/slog"
	"os"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticketing/internal/app"
	"github.com/metinatakli/cinema-ticketing/internal/cache"
	"github.com/metinatakli/cinema-ticketing/internal/config"
	"github.com/metinatakli/cinema-ticketing/internal/handler"
	appvalidator "github.com/metinatakli/cinema-ticketing/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App            *app.Application
	DB             *pgxpool.Pool
	Redis          *redis.Client
	SessionManager *scs.SessionManager
	Services       app.Services
	Cache          *cache.AvailabilityCache
}

func newTestApp(cfg config.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)
	availabilityCache := cache.NewAvailabilityCache(redisClient, cfg.Cache.AvailabilityTTL)
	services := app.NewServices(logger, app.NewPostgresRepositories(db), availabilityCache)

	health := handler.NewHealthcheckHandler(cfg, map[string]handler.Pinger{
		"postgres": handler.PingFunc(db.Ping),
	})

	application := app.NewApp(
		cfg,
		logger,
		validator,
		sessionManager,
		services,
		health,
	)

	return &TestApp{
		App:            application,
		DB:             db,
		Redis:          redisClient,
		SessionManager: sessionManager,
		Services:       services,
		Cache:          availabilityCache,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}
