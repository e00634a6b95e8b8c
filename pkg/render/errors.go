package render

import "errors"

var (
	// ErrEmptySelection indicates there is nothing to render.
	ErrEmptySelection = errors.New("render: empty selection")

	// ErrRenderFailed indicates a template failed to execute.
	ErrRenderFailed = errors.New("render: failed to render document")
)
