package store

import "errors"

var (
	// ErrSessionClosed indicates a query on a released session.
	ErrSessionClosed = errors.New("store: session closed")

	// ErrQueryFailed wraps driver errors.
	ErrQueryFailed = errors.New("store: query failed")
)
