package job

import (
	"context"
	"log/slog"
	"time"
)

// config holds job manager configuration.
type config struct {
	registry    *taskRegistry
	logger      *slog.Logger
	location    *time.Location
	cancelIf    func(error) bool
	schedules   []scheduleConfig
	maxWorkers  int
	maxAttempts int
	jobTimeout  time.Duration
	runOnStart  bool
}

func newConfig() *config {
	return &config{
		registry: newTaskRegistry(),
		location: time.UTC,
	}
}

// Option configures the job manager.
type Option func(*config)

// WithScheduledTask registers a periodic task using structural typing.
// Schedule() returns a five-field cron expression evaluated in the
// manager's location.
//
// Example:
//
//	func (t *DigestTask) Name() string     { return "digest:letters" }
//	func (t *DigestTask) Schedule() string { return "0 8 * * *" }
//	func (t *DigestTask) Handle(ctx context.Context) error {
//	    _, err := t.pipeline.Run(ctx)
//	    return err
//	}
//
//	job.WithScheduledTask(task)
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, scheduleConfig{
			name:     task.Name(),
			schedule: task.Schedule(),
			handler:  task.Handle,
		})
	}
}

// WithLogger sets the logger for job processing.
// If not set, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers sets the number of concurrent workers on the default queue.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithLocation sets the time zone cron expressions are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithMaxAttempts bounds how many times River runs a failing job.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithJobTimeout sets the per-attempt deadline River applies to workers.
func WithJobTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.jobTimeout = d
		}
	}
}

// WithCancelIf marks errors that retrying cannot fix. Matching errors
// cancel the job instead of scheduling another attempt.
func WithCancelIf(fn func(error) bool) Option {
	return func(c *config) {
		c.cancelIf = fn
	}
}

// WithRunOnStart enqueues every scheduled task once when the manager starts.
func WithRunOnStart(enabled bool) Option {
	return func(c *config) {
		c.runOnStart = enabled
	}
}
