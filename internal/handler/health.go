package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/goals/api/internal/model"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthResponse is the body of a healthy GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// Health returns a GET /health handler. A nil store always reports ok.
func Health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := store.Ping(ctx); err != nil {
				slog.Warn("health check failed", slog.String("error", err.Error()))
				WriteError(w, model.NewServiceUnavailableError("Store unavailable"))
				return
			}
		}
		WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
