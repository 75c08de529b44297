// Package handler is the HTTP layer: it binds and validates requests,
// calls services and writes responses.
package handler
