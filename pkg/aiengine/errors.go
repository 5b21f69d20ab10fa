package aiengine

import "errors"

var (
	// ErrUnavailable covers transport faults, non-2xx responses and timeouts.
	ErrUnavailable = errors.New("ai engine unavailable")
	// ErrBadResponse means the model replied but not with the required shape.
	// A malformed analysis is a hard failure, never coerced into an empty one.
	ErrBadResponse = errors.New("ai engine returned a malformed response")
)
