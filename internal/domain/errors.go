package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// statuses in one place; services wrap them with fmt.Errorf("%w") for detail.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("operation not permitted")
	ErrInvalidInput = errors.New("invalid input")
)
