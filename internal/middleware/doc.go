// Package middleware provides the HTTP middleware used by the goals API.
//
// Middleware compose with Chain, outermost first:
//
//	h := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//	)
//
// Auth validates a bearer token and stores the caller identity in the
// request context, where handlers read it with GetUserID. RateLimit and
// Idempotency keep per-client state in memory; call Stop on their stores
// at shutdown.
package middleware
