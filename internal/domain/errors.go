package domain

import "errors"

var (
	// ErrRejected is returned when an actor without the admin role calls a rate mutator.
	// The rate table is left untouched whenever this error is produced.
	ErrRejected = errors.New("rejected")
	// ErrInvalidInput covers negative counts and malformed rate values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable wraps every failure of the external content source.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("resource not found")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrRateLimited        = errors.New("rate limited")
)
