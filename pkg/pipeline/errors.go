package pipeline

import (
	"context"
	"errors"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/dispatch"
	"github.com/dmitrymomot/digest/pkg/render"
)

var (
	// ErrUnsupportedKind is returned for a deployment kind with no selector.
	ErrUnsupportedKind = errors.New("pipeline: unsupported content kind")

	// ErrGuardUnavailable wraps lock and dispatch log failures.
	ErrGuardUnavailable = errors.New("pipeline: once-per-day guard unavailable")
)

// Retryable reports whether running again may succeed. Configuration,
// request, data and template problems repeat on every attempt; store,
// provider, guard and deadline failures are transient.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, dispatch.ErrConfiguration),
		errors.Is(err, dispatch.ErrInvalidRequest),
		errors.Is(err, content.ErrInvalidRecord),
		errors.Is(err, render.ErrRenderFailed),
		errors.Is(err, ErrUnsupportedKind),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}
