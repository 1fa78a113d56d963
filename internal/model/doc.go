// Package model defines the domain entities and wire types for the goals API.
//
// # Domain Entities
//
//   - Goal: a short text item owned by exactly one user
//
// Users are external; only their identifier is stored on a Goal.
//
// # JSON Serialization
//
// Models carry json tags for the HTTP API and db tags for the relational store:
//
//	type Goal struct {
//	    ID   string `json:"id" db:"id"`
//	    Text string `json:"text" db:"text"`
//	}
//
// # Errors
//
// APIError is the single error body shape: {"message": "...", "stack": "..."}.
// The stack is only included in development.
package model
