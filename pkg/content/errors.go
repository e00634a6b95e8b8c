package content

import "errors"

var (
	// ErrNotFound is returned by stores when no record matches a lookup.
	ErrNotFound = errors.New("content: record not found")

	// ErrInvalidRecord indicates a stored value outside the enumerated domain.
	ErrInvalidRecord = errors.New("content: invalid record")

	// ErrInvalidMonthDay indicates a malformed month-day key.
	ErrInvalidMonthDay = errors.New("content: invalid month-day key")
)
