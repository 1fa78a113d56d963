package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Identity Errors =====
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAuthorized = errors.New("user not authorized to modify goal")
)

// ===== Goal Errors =====
var (
	ErrTextRequired = errors.New("text field is required")
	ErrGoalNotFound = errors.New("goal not found")
)
