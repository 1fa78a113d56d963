// Package service implements the goal business rules.
//
// GoalService sits between the HTTP handlers and the goal store. It owns the
// ownership gate shared by update and delete:
//
//  1. the goal must exist (ErrGoalNotFound)
//  2. a caller identity must be present (ErrUserNotFound)
//  3. the caller must own the goal (ErrNotAuthorized)
//
// Writes are issued as a single store statement conditioned on id and owner.
// The gate is only evaluated after such a write matched nothing, to report why.
//
// # Repository Interfaces
//
// The service defines the GoalRepository interface it needs, allowing:
//
//   - Easy mocking for unit tests
//   - Swapping between the SurrealDB and SQL stores
//
// # Error Handling
//
// All errors are sentinels defined in errors.go. Handlers map them to HTTP
// responses with errors.Is.
package service
