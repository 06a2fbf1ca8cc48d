package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)
