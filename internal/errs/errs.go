// Package errs defines the error types returned to API clients.
//
// Every failure the service reports (validation, missing persona,
// rejected write, concurrency conflict) is expressed as an *HTTPError so
// the global error handler can write one consistent JSON shape.
package errs
