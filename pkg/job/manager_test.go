package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/digest/pkg/logger"
)

func TestNewManager_NilPool(t *testing.T) {
	t.Parallel()

	_, err := NewManager(nil)
	assert.ErrorIs(t, err, ErrPoolRequired)

	_, err = NewEnqueuer(nil)
	assert.ErrorIs(t, err, ErrPoolRequired)
}

func TestTaskArgs_Kind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "digest:task", taskArgs{}.Kind())
}

func newJob(name string) *river.Job[taskArgs] {
	return &river.Job[taskArgs]{
		JobRow: &rivertype.JobRow{ID: 7, Attempt: 1, MaxAttempts: 3},
		Args:   taskArgs{TaskName: name},
	}
}

func TestTaskWorker_Work(t *testing.T) {
	t.Parallel()

	permanent := errors.New("bad configuration")
	transient := errors.New("provider timeout")

	newWorker := func(err error) (*taskWorker, *scheduledTestTask) {
		task := &scheduledTestTask{err: err}
		registry := newTaskRegistry()
		registry.register("digest:letters", &scheduledTaskExecutor{handler: task.Handle})
		return &taskWorker{
			registry: registry,
			logger:   logger.NewNope(),
			cancelIf: func(err error) bool { return errors.Is(err, permanent) },
		}, task
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		w, task := newWorker(nil)
		require.NoError(t, w.Work(context.Background(), newJob("digest:letters")))
		assert.Equal(t, 1, task.calls)
	})

	t.Run("transient error is returned for retry", func(t *testing.T) {
		t.Parallel()

		w, _ := newWorker(transient)
		err := w.Work(context.Background(), newJob("digest:letters"))
		assert.Same(t, transient, err)
	})

	t.Run("permanent error cancels", func(t *testing.T) {
		t.Parallel()

		w, _ := newWorker(permanent)
		err := w.Work(context.Background(), newJob("digest:letters"))
		require.ErrorIs(t, err, permanent)
		assert.NotSame(t, permanent, err, "error must be wrapped by river.JobCancel")
	})

	t.Run("unknown task cancels", func(t *testing.T) {
		t.Parallel()

		w, task := newWorker(nil)
		err := w.Work(context.Background(), newJob("digest:missing"))
		require.ErrorIs(t, err, ErrUnknownTask)
		assert.Zero(t, task.calls)
	})
}

func TestParseCronSchedule(t *testing.T) {
	t.Parallel()

	valid := []string{"* * * * *", "0 8 * * *", "0 0 * * 0", "*/15 * * * *", "30 14 * * 1-5"}
	for _, expr := range valid {
		assert.NoError(t, ParseSchedule(expr), expr)
	}

	invalid := []string{"", "* * *", "* * * * * *", "60 * * * *", "* 25 * * *", "not a cron expression"}
	for _, expr := range invalid {
		assert.ErrorIs(t, ParseSchedule(expr), ErrInvalidSchedule, expr)
	}
}

func TestCronScheduleAdapter_Location(t *testing.T) {
	t.Parallel()

	berlin := time.FixedZone("CEST", 2*60*60)
	schedule, err := parseCronSchedule("0 8 * * *", berlin)
	require.NoError(t, err)

	// 05:00 UTC is 07:00 CEST, so the next run is 08:00 CEST the same day.
	base := time.Date(2024, time.July, 14, 5, 0, 0, 0, time.UTC)
	next := schedule.Next(base)
	assert.True(t, next.Equal(time.Date(2024, time.July, 14, 6, 0, 0, 0, time.UTC)), next.String())

	utc, err := parseCronSchedule("0 8 * * *", nil)
	require.NoError(t, err)
	next = utc.Next(base)
	assert.True(t, next.Equal(time.Date(2024, time.July, 14, 8, 0, 0, 0, time.UTC)), next.String())
}

func TestErrors(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ErrUnknownTask.Error(), "unknown task")
	assert.Contains(t, ErrInvalidSchedule.Error(), "invalid schedule")
	assert.Contains(t, ErrAlreadyStarted.Error(), "already started")
	assert.Contains(t, ErrNotStarted.Error(), "not started")
}
