// Package service contains the business rules between handlers and
// repositories.
//
// Services translate repository outcomes into *errs.HTTPError values so
// handlers never inspect storage errors.
package service
