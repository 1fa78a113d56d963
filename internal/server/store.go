package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/goals/api/internal/config"
	"github.com/forgo/goals/api/internal/database"
	"github.com/forgo/goals/api/internal/handler"
	"github.com/forgo/goals/api/internal/repository"
	"github.com/forgo/goals/api/internal/service"
)

// Store is an opened goal store
type Store struct {
	Goals  service.GoalRepository
	Pinger handler.Pinger
	close  func() error
}

// Close releases the underlying connection
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStore connects to the goal store selected by cfg.Store.Driver
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreSurrealDB:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		return &Store{
			Goals:  repository.NewGoalRepository(db),
			Pinger: db,
			close:  db.Close,
		}, nil

	case config.StorePostgres, config.StoreSQLite:
		db, err := database.OpenSQL(ctx, cfg.Store.Driver, cfg.Store.URL)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to relational store", slog.String("driver", cfg.Store.Driver))
		return &Store{
			Goals:  repository.NewSQLGoalRepository(db),
			Pinger: handler.PingFunc(db.PingContext),
			close:  db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, cfg.Store.Driver)
	}
}
