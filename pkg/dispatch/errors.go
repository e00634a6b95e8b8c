package dispatch

import "errors"

var (
	// ErrConfiguration indicates missing or malformed deployment settings.
	// Re-running without changing configuration will fail the same way.
	ErrConfiguration = errors.New("dispatch: invalid configuration")

	// ErrProvider indicates the provider rejected or failed the request.
	// The failure is considered transient.
	ErrProvider = errors.New("dispatch: provider failure")

	// ErrInvalidRequest indicates the document itself is incomplete.
	ErrInvalidRequest = errors.New("dispatch: invalid request")
)
