// Package testdb provides isolated databases for tests.
//
// NewSQLite opens a migrated SQLite file under t.TempDir and needs no
// external services:
//
//	db := testdb.NewSQLite(t)
//	repo := repository.NewSQLGoalRepository(db)
//
// NewSurreal connects to a real SurrealDB at TEST_DB_HOST (TEST_DB_PORT,
// TEST_DB_USER and TEST_DB_PASSWORD are optional) inside a unique namespace
// that is removed on cleanup. Without TEST_DB_HOST the test is skipped.
package testdb
