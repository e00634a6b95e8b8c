package job

import (
	"context"
	"errors"
	"time"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

// scheduledHandler wraps a scheduled task's Handle method.
type scheduledHandler func(ctx context.Context) error

// scheduleConfig holds configuration for a scheduled task.
type scheduleConfig struct {
	handler  scheduledHandler
	name     string
	schedule string
}

type scheduledTaskExecutor struct {
	handler scheduledHandler
}

func (e *scheduledTaskExecutor) Execute(ctx context.Context) error {
	return e.handler(ctx)
}

// cronScheduleAdapter evaluates a cron schedule in a fixed location, so
// "0 8 * * *" means 08:00 local time across DST changes.
type cronScheduleAdapter struct {
	schedule cron.Schedule
	location *time.Location
}

func (a *cronScheduleAdapter) Next(current time.Time) time.Time {
	return a.schedule.Next(current.In(a.location))
}

// ParseSchedule validates a five-field cron expression.
func ParseSchedule(expr string) error {
	_, err := parseCronSchedule(expr, time.UTC)
	return err
}

func parseCronSchedule(expr string, loc *time.Location) (river.PeriodicSchedule, error) {
	if loc == nil {
		loc = time.UTC
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}
	return &cronScheduleAdapter{schedule: schedule, location: loc}, nil
}
