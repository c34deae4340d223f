package availability

import "errors"

var (
	// ErrInvalidInput is returned for a missing or unparsable date.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable wraps any failure reading the booking store.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
