package server

import (
	"net/http"

	"github.com/forgo/goals/api/internal/handler"
	"github.com/forgo/goals/api/internal/middleware"
	"github.com/forgo/goals/api/internal/model"
)

// Config holds everything needed to build the API handler
type Config struct {
	Goals          handler.GoalService
	Tokens         middleware.TokenValidator
	Store          handler.Pinger
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
	Idempotency    *middleware.IdempotencyStore
	// Debug adds stack traces to error bodies
	Debug bool
}

// NewHandler registers the API routes and wraps them in the global middleware chain
func NewHandler(cfg Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health(cfg.Store))

	// Goal endpoints (protected)
	routeMW := []middleware.Middleware{middleware.Auth(cfg.Tokens)}
	if cfg.Idempotency != nil {
		routeMW = append(routeMW, middleware.Idempotency(cfg.Idempotency))
	}
	goalHandler := handler.NewGoalHandler(handler.GoalHandlerConfig{
		Service: cfg.Goals,
		Debug:   cfg.Debug,
	})
	goalHandler.RegisterRoutes(mux, routeMW...)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, model.NewNotFoundError("Not found"))
	})

	// Apply global middleware
	global := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.AllowedOrigins),
	}
	if cfg.RateLimiter != nil {
		global = append(global, middleware.RateLimit(cfg.RateLimiter))
	}
	global = append(global, middleware.Compress)

	return middleware.Chain(mux, global...)
}
