package resend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/digest/pkg/dispatch"
)

type statusKey struct{}

// statusTransport stores the response status of each API call in the *int
// carried by the request context. The Resend client returns plain string
// errors, so this is the only place the status survives.
type statusTransport struct {
	next http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if resp != nil {
		if status, ok := req.Context().Value(statusKey{}).(*int); ok {
			*status = resp.StatusCode
		}
	}
	return resp, err
}

func withStatus(ctx context.Context) (context.Context, *int) {
	status := new(int)
	return context.WithValue(ctx, statusKey{}, status), status
}

// classify marks rejections that a retry cannot fix. 429 and 5xx stay
// provider failures.
func classify(op string, status int, err error) error {
	switch status {
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusUnprocessableEntity:
		return errors.Join(
			fmt.Errorf("resend: %s rejected with status %d: %w", op, status, err),
			dispatch.ErrConfiguration,
		)
	}
	return fmt.Errorf("resend: failed to %s: %w", op, err)
}
