// Package errs defines the sentinel errors shared by the domain services.
//
// Services wrap these with fmt.Errorf("...: %w", errs.ErrNotFound) so the
// HTTP layer can map them to status codes with errors.Is.
package errs

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
