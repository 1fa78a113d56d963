package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/forgo/goals/api/internal/database"
)

// TestDB is an isolated SurrealDB namespace for one test
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

var (
	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// surrealConfig returns SurrealDB settings from TEST_DB_* variables.
// ok is false when TEST_DB_HOST is unset.
func surrealConfig() (cfg database.Config, ok bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return cfg, false
	}
	return database.Config{
		Host:     host,
		Port:     getEnv("TEST_DB_PORT", "8000"),
		User:     getEnv("TEST_DB_USER", "root"),
		Password: getEnv("TEST_DB_PASSWORD", "root"),
	}, true
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// NewSurreal connects to the SurrealDB named by TEST_DB_HOST in a fresh
// namespace. The test is skipped when TEST_DB_HOST is unset. The namespace
// is removed on cleanup.
func NewSurreal(t *testing.T) *TestDB {
	t.Helper()

	cfg, ok := surrealConfig()
	if !ok {
		t.Skip("testdb: TEST_DB_HOST not set, skipping SurrealDB test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	tdb := &TestDB{DB: db, Namespace: cfg.Namespace, Database: cfg.Database, t: t}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close removes the test namespace and closes the connection
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
	_ = tdb.DB.Close()
	tdb.DB = nil
}

// MustExec executes a query and fails the test on error
func (tdb *TestDB) MustExec(query string, vars map[string]interface{}) {
	tdb.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := tdb.DB.Execute(ctx, query, vars); err != nil {
		tdb.t.Fatalf("testdb: exec failed: %v\nQuery: %s", err, query)
	}
}

// NewSQLite opens a migrated SQLite database in the test's temp dir.
// It is closed on cleanup.
func NewSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.OpenSQL(context.Background(), database.DriverSQLite, SQLiteDSN(t))
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SQLiteDSN returns a DSN for a fresh SQLite file in the test's temp dir
func SQLiteDSN(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "goals.db") + "?_time_format=sqlite"
}
