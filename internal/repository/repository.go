// Package repository holds the SQL for every table the service owns.
//
// Repositories return domain records or sentinel errors; driver errors are
// wrapped with context and left for the service to classify.
package repository
