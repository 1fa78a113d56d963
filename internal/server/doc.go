// Package server assembles the goals API: it opens the configured store and
// builds the routed, middleware-wrapped http.Handler that cmd/server serves.
package server
