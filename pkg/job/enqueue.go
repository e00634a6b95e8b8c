package job

import "time"

// enqueueConfig holds options for enqueueing a job.
type enqueueConfig struct {
	scheduledAt *time.Time
	tags        []string
	maxAttempts int
	uniqueFor   time.Duration
}

// EnqueueOption configures how a job is enqueued.
type EnqueueOption func(*enqueueConfig)

// ScheduledAt delays the job until t.
func ScheduledAt(t time.Time) EnqueueOption {
	return func(c *enqueueConfig) {
		c.scheduledAt = &t
	}
}

// ScheduledIn delays the job by d from now.
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		t := time.Now().Add(d)
		c.scheduledAt = &t
	}
}

// MaxAttempts overrides the retry limit for this job. Non-positive values
// are ignored.
func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// UniqueFor drops the insert when a job for the same task was inserted
// within d.
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		c.uniqueFor = d
	}
}

// Tags attaches tags to the job row.
func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.tags = append(c.tags, tags...)
	}
}
