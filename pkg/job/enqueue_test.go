package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduledAt(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	future := time.Now().Add(24 * time.Hour)
	ScheduledAt(future)(cfg)

	assert.NotNil(t, cfg.scheduledAt)
	assert.Equal(t, future, *cfg.scheduledAt)
}

func TestScheduledIn(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	before := time.Now()
	ScheduledIn(time.Hour)(cfg)
	after := time.Now()

	assert.NotNil(t, cfg.scheduledAt)
	assert.True(t, cfg.scheduledAt.After(before.Add(time.Hour-time.Second)))
	assert.True(t, cfg.scheduledAt.Before(after.Add(time.Hour+time.Second)))
}

func TestMaxAttempts(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{}
	MaxAttempts(5)(cfg)
	assert.Equal(t, 5, cfg.maxAttempts)

	MaxAttempts(0)(cfg)
	MaxAttempts(-1)(cfg)
	assert.Equal(t, 5, cfg.maxAttempts)
}

func TestTags(t *testing.T) {
	t.Parallel()

	cfg := &enqueueConfig{tags: []string{"existing"}}
	Tags("manual")(cfg)
	assert.Equal(t, []string{"existing", "manual"}, cfg.tags)
}

func TestBuildJobArgs(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		args, opts := buildJobArgs("digest:jobs")
		assert.Equal(t, "digest:jobs", args.TaskName)
		assert.Zero(t, opts.MaxAttempts)
		assert.True(t, opts.ScheduledAt.IsZero())
		assert.False(t, opts.UniqueOpts.ByArgs)
	})

	t.Run("all options", func(t *testing.T) {
		t.Parallel()

		at := time.Date(2024, time.July, 14, 8, 0, 0, 0, time.UTC)
		args, opts := buildJobArgs("digest:letters",
			ScheduledAt(at),
			MaxAttempts(2),
			Tags("manual"),
			UniqueFor(time.Minute),
		)
		assert.Equal(t, "digest:letters", args.TaskName)
		assert.Equal(t, at, opts.ScheduledAt)
		assert.Equal(t, 2, opts.MaxAttempts)
		assert.Equal(t, []string{"manual"}, opts.Tags)
		assert.True(t, opts.UniqueOpts.ByArgs)
		assert.Equal(t, time.Minute, opts.UniqueOpts.ByPeriod)
	})
}
