package model

import (
	"encoding/json"
	"net/http"
)

// APIError is the JSON error body returned by every endpoint.
//
// Stack is only populated when the server runs in development mode.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// WriteJSON writes the error as a JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// WithStack returns a copy of the error carrying the given stack trace
func (e *APIError) WithStack(stack string) *APIError {
	cp := *e
	cp.Stack = stack
	return &cp
}

// NewBadRequestError creates a 400 error
func NewBadRequestError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError(message string) *APIError {
	if message == "" {
		message = "Not authorized"
	}
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// NewRateLimitError creates a 429 error
func NewRateLimitError() *APIError {
	return &APIError{Status: http.StatusTooManyRequests, Message: "Too many requests, please slow down"}
}

// NewServiceUnavailableError creates a 503 error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: message}
}

// NewInternalError creates a 500 error
func NewInternalError() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: "Internal server error"}
}
