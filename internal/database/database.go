package database

import (
	"context"
	"errors"
)

// ===== Store Errors =====
var (
	ErrNotFound          = errors.New("record not found")
	ErrConnection        = errors.New("database connection error")
	ErrQuery             = errors.New("query error")
	ErrUnsupportedDriver = errors.New("unsupported store driver")
)

// Database is a SurrealQL document store connection.
// Query results are returned per statement as {"status", "result"} maps.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
	// QueryOne returns the first record of the first statement, or ErrNotFound
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
	// Execute runs a mutation and discards its result
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds SurrealDB connection settings
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
