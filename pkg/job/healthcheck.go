package job

import (
	"context"
	"errors"
)

// ErrHealthcheckFailed is returned when the job manager health check fails.
var ErrHealthcheckFailed = errors.New("job: healthcheck failed")

var (
	errManagerNil        = errors.New("manager is nil")
	errManagerNotStarted = errors.New("manager not started")
)

// Healthcheck reports whether the manager is started and its pool answers.
// Serve mode mounts it as the "jobs" readiness check.
func Healthcheck(m *Manager) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if m == nil {
			return errors.Join(ErrHealthcheckFailed, errManagerNil)
		}

		m.mu.Lock()
		started := m.started
		m.mu.Unlock()

		if !started {
			return errors.Join(ErrHealthcheckFailed, errManagerNotStarted)
		}

		// Pool.Ping verifies both database connectivity and River's ability
		// to access required tables, since River uses the same pool.
		if err := m.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}

		return nil
	}
}
