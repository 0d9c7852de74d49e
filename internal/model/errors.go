package model

import "errors"

var (
	// Credential errors, raised by token verification
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")

	// Access errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Request errors
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidInput      = errors.New("invalid input")

	// Store or payment processor failures
	ErrUpstreamFailure = errors.New("upstream failure")
)
