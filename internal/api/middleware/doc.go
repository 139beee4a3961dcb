// Package middleware provides the HTTP middleware stack for the shell API.
//
//   - CORS: cross-origin access for the browser renderer
//   - RateLimit: per-IP token buckets with idle client eviction
//   - Logger: one structured line per request, tagged with the trace id
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.Logger(logger))
package middleware
