package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/goals/api/internal/config"
	"github.com/forgo/goals/api/internal/events"
	"github.com/forgo/goals/api/internal/middleware"
	"github.com/forgo/goals/api/internal/server"
	"github.com/forgo/goals/api/internal/service"
	"github.com/forgo/goals/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Open the goal store
	ctx := context.Background()
	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store",
			slog.String("driver", cfg.Store.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Event publisher (optional)
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(events.AMQPConfig{
			URL:      cfg.AMQP.URL,
			Exchange: cfg.AMQP.Exchange,
		})
		if err != nil {
			slog.Error("failed to connect to AMQP broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = amqpPublisher.Close() }()
		publisher = amqpPublisher
	}

	goalService := service.NewGoalService(service.GoalServiceConfig{
		GoalRepo:  store.Goals,
		Publisher: publisher,
	})

	// Shared middleware state
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{})
	defer idempotencyStore.Stop()

	// Create HTTP server
	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: server.NewHandler(server.Config{
			Goals:          goalService,
			Tokens:         jwtService,
			Store:          store.Pinger,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RateLimiter:    rateLimiter,
			Idempotency:    idempotencyStore,
			Debug:          cfg.IsDevelopment(),
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
