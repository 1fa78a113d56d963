// Package database provides store connectivity for the goals API.
//
// Two backends are supported:
//
//   - SurrealDB, a document database, behind the Database interface
//   - PostgreSQL or SQLite, opened with OpenSQL and migrated from embedded schema files
//
// # Database Interface
//
// The Database interface provides three query methods:
//   - Query: Returns every statement result wrapped as {status, result}
//   - QueryOne: Returns the first record of the first statement
//   - Execute: No return value (for mutations whose result is not needed)
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
//
// # Usage Example
//
//	db := database.NewSurrealDB(cfg)
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	sqlDB, err := database.OpenSQL(ctx, "sqlite", "file:goals.db")
package database
