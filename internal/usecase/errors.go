package usecase

import crerr "github.com/cockroachdb/errors"

// Use case errors wrap the domain error that caused them, so callers can
// match either the class here or the rioerr sentinel underneath.
var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)
