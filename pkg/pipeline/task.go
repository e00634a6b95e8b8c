package pipeline

import (
	"context"

	"github.com/dmitrymomot/digest/pkg/content"
)

// Task runs a pipeline on a cron schedule through the job manager.
type Task struct {
	pipeline *Pipeline
	schedule string
}

// NewTask wraps p for scheduling with a five-field cron expression.
func NewTask(p *Pipeline, schedule string) *Task {
	return &Task{pipeline: p, schedule: schedule}
}

// TaskName is the job name used for kind's scheduled runs and triggers.
func TaskName(kind content.Kind) string { return "digest:" + kind.String() }

func (t *Task) Name() string     { return TaskName(t.pipeline.kind) }
func (t *Task) Schedule() string { return t.schedule }

// Handle runs one pass. The report is logged by Run.
func (t *Task) Handle(ctx context.Context) error {
	_, err := t.pipeline.Run(ctx)
	return err
}
