// Package middleware holds the echo middleware shared by every route:
// CORS, secure headers, request ids, request-scoped logging, New Relic
// tracing, panic recovery and the global error handler.
package middleware
