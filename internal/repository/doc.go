// Package repository implements the data access layer for goals.
//
// Two implementations of the same goal store contract live here:
//
//   - GoalRepository issues SurrealQL against a database.Database
//   - SQLGoalRepository issues SQL through sqlx against PostgreSQL or SQLite
//
// # Ownership-Conditional Writes
//
// Updates and deletes are single statements matching both the record id and the
// owning user. A write that matches nothing reports "no match" (nil goal or false)
// rather than an error; the caller decides whether that means missing or foreign.
//
// # Query Patterns
//
//   - Parameterized queries ($variable in SurrealQL, ? rebound by sqlx in SQL)
//   - type::record() for safe ID handling
//   - time::now() for store-managed timestamps in SurrealDB
//
// # Example Usage
//
//	repo := NewGoalRepository(db)
//	goal, err := repo.GetByID(ctx, "goal:abc123")
//	if err != nil {
//	    return err
//	}
//	if goal == nil {
//	    // Handle not found
//	}
package repository
