// Package sqlerr classifies PostgreSQL driver errors.
//
// Repositories return pgx errors unchanged (wrapped with context); callers
// use this package to tell a rejected write (constraint or data violation)
// apart from a storage failure, and to turn either into an API error.
package sqlerr
