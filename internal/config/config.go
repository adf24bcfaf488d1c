package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	Env       string
	LogFile   string
	DB        DBConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Telemetry TelemetryConfig
	Admin     AdminConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type CacheConfig struct {
	AvailabilityTTL time.Duration
}

type TelemetryConfig struct {
	CollectorURL   string
	SampleRatio    float64
	MetricInterval time.Duration
}

// AdminConfig describes the manager account created at startup. It is skipped
// when Username is empty.
type AdminConfig struct {
	Username string
	Password string
	Age      int
}

// Load reads the optional env file and parses args. Environment variables act as
// flag defaults, so an explicit flag always wins.
func Load(envFile string, args []string) (Config, bool, error) {
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, false, err
	}

	var cfg Config

	flags := flag.NewFlagSet("api", flag.ContinueOnError)

	flags.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flags.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flags.StringVar(&cfg.LogFile, "log-file", envString("LOG_FILE", ""), "write logs to this file with rotation instead of stdout")

	flags.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flags.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	flags.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flags.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flags.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flags.DurationVar(&cfg.Cache.AvailabilityTTL, "availability-cache-ttl", envDuration("AVAILABILITY_CACHE_TTL", 5*time.Minute), "TTL of cached movie availability listings")

	flags.StringVar(&cfg.Telemetry.CollectorURL, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")
	flags.Float64Var(&cfg.Telemetry.SampleRatio, "otel-sample-ratio", envFloat("OTEL_SAMPLE_RATIO", 1), "fraction of root spans to sample")
	flags.DurationVar(&cfg.Telemetry.MetricInterval, "otel-metric-interval", envDuration("OTEL_METRIC_INTERVAL", 15*time.Second), "metric export interval")

	flags.StringVar(&cfg.Admin.Username, "admin-username", envString("ADMIN_USERNAME", ""), "manager account created at startup")
	flags.StringVar(&cfg.Admin.Password, "admin-password", envString("ADMIN_PASSWORD", ""), "password of the startup manager account")
	flags.IntVar(&cfg.Admin.Age, "admin-age", envInt("ADMIN_AGE", 30), "age of the startup manager account")

	displayVersion := flags.Bool("version", false, "Display version and exit")

	err = flags.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	return cfg, *displayVersion, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}

func envFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}

	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}

	return d
}
