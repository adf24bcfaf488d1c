package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/cinema-ticketing/api"
	"github.com/metinatakli/cinema-ticketing/internal/config"
	"github.com/metinatakli/cinema-ticketing/internal/jsonutil"
	"github.com/metinatakli/cinema-ticketing/internal/vcs"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthcheckHandler struct {
	cfg          config.Config
	dependencies map[string]Pinger
}

func NewHealthcheckHandler(cfg config.Config, dependencies map[string]Pinger) *HealthcheckHandler {
	return &HealthcheckHandler{
		cfg:          cfg,
		dependencies: dependencies,
	}
}

// GetHealth answers 503 with status DOWN when any dependency fails its ping.
func (h *HealthcheckHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "UP", http.StatusOK

	for _, dep := range h.dependencies {
		if err := dep.Ping(ctx); err != nil {
			status, code = "DOWN", http.StatusServiceUnavailable
			break
		}
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     vcs.Version(),
			Environment: h.cfg.Env,
		},
	}

	jsonutil.WriteJSON(w, code, resp, nil)
}
