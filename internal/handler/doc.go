// Package handler provides the HTTP handlers for the goals API.
//
// GoalHandler serves the four goal routes:
//
//	GET    /goals       200 {"goals": [...]}
//	POST   /goals       200 {"goal": {...}}
//	PUT    /goals/{id}  200 {...}           (bare goal)
//	DELETE /goals/{id}  200 {"id": "..."}
//
// Handlers read the caller from middleware.GetUserID and pass it to the
// service. Service errors go through MapServiceError, which produces the
// {"message", "stack"?} error body. Response helpers live in response.go.
package handler
