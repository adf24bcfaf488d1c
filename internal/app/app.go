package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticketing/internal/cache"
	"github.com/metinatakli/cinema-ticketing/internal/config"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
	"github.com/metinatakli/cinema-ticketing/internal/handler"
	"github.com/metinatakli/cinema-ticketing/internal/repository"
	"github.com/metinatakli/cinema-ticketing/internal/service"
	appvalidator "github.com/metinatakli/cinema-ticketing/internal/validator"
	"github.com/metinatakli/cinema-ticketing/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         config.Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	health         *handler.HealthcheckHandler

	catalog    *service.Catalog
	scheduling *service.Scheduling
	ticketing  *service.Ticketing
	viewing    *service.Viewing
	accounts   *service.Accounts
}

// Repositories is the storage the services run on.
type Repositories struct {
	Tx       domain.Transactor
	Users    domain.UserRepository
	Movies   domain.MovieRepository
	Sessions domain.SessionRepository
	Tickets  domain.TicketRepository
}

func NewPostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Tx:       repository.NewPostgresTransactor(db),
		Users:    repository.NewPostgresUserRepository(db),
		Movies:   repository.NewPostgresMovieRepository(db),
		Sessions: repository.NewPostgresSessionRepository(db),
		Tickets:  repository.NewPostgresTicketRepository(db),
	}
}

type Services struct {
	Catalog    *service.Catalog
	Scheduling *service.Scheduling
	Ticketing  *service.Ticketing
	Viewing    *service.Viewing
	Accounts   *service.Accounts
}

// NewServices wires the services over repos. A nil availabilityCache disables
// caching of movie listings.
func NewServices(logger *slog.Logger, repos Repositories, availabilityCache service.AvailabilityCache) Services {
	scheduling := service.NewScheduling(logger, repos.Movies, repos.Sessions)
	ticketing := service.NewTicketing(logger, repos.Tx, repos.Tickets, repos.Users, scheduling, availabilityCache)

	return Services{
		Catalog:    service.NewCatalog(logger, repos.Movies, scheduling, availabilityCache),
		Scheduling: scheduling,
		Ticketing:  ticketing,
		Viewing:    service.NewViewing(ticketing),
		Accounts:   service.NewAccounts(logger, repos.Users),
	}
}

func NewApp(
	cfg config.Config,
	logger *slog.Logger,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	services Services,
	health *handler.HealthcheckHandler) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		validator:      validator,
		sessionManager: sessionManager,
		health:         health,
		catalog:        services.Catalog,
		scheduling:     services.Scheduling,
		ticketing:      services.Ticketing,
		viewing:        services.Viewing,
		accounts:       services.Accounts,
	}
}

func Run() error {
	cfg, displayVersion, err := config.Load(".env", os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger, logCloser := NewLogger(cfg, os.Stdout)
	defer logCloser.Close()

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.Telemetry.CollectorURL != "" {
		logger = withTelemetryLogs(logger)
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	availabilityCache := cache.NewAvailabilityCache(redisClient, cfg.Cache.AvailabilityTTL)
	services := NewServices(logger, NewPostgresRepositories(db), availabilityCache)

	if cfg.Admin.Username != "" {
		err = services.Accounts.EnsureManager(context.Background(), cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Age)
		if err != nil {
			return fmt.Errorf("failed to bootstrap manager account: %w", err)
		}
	}

	health := handler.NewHealthcheckHandler(cfg, map[string]handler.Pinger{
		"postgres": handler.PingFunc(db.Ping),
		"redis": handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	})

	app := NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		NewSessionManager(redisClient),
		services,
		health,
	)

	return app.run()
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	return sessionManager
}

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg config.Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	err = otelpgx.RecordStats(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
