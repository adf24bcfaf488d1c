package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinema-ticketing/internal/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const loggerContextKey = contextKey("logger")

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger writes text logs to stdout, or to a rotated file when cfg.LogFile is
// set. The returned closer releases the file.
func NewLogger(cfg config.Config, stdout io.Writer) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{}
	if cfg.Env == "dev" {
		opts.Level = slog.LevelDebug
	}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(stdout, opts)), nopCloser{}
	}

	output := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    100,
		MaxAge:     30,
		MaxBackups: 3,
		Compress:   true,
	}

	return slog.New(slog.NewJSONHandler(output, opts)), output
}

// withTelemetryLogs also ships every record to the OpenTelemetry log pipeline.
func withTelemetryLogs(logger *slog.Logger) *slog.Logger {
	return slog.New(NewMultiHandler(
		logger.Handler(),
		otelslog.NewHandler(serviceName),
	))
}

// logRequests attaches a request scoped logger to the context and logs each
// completed request.
func (app *Application) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		logger := app.logger.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"uri", r.URL.RequestURI(),
		)

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.InfoContext(ctx, "request completed",
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
