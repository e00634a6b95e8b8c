package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/dmitrymomot/digest/pkg/logger"
)

const (
	defaultMaxWorkers  = 1
	defaultMaxAttempts = 3
	defaultJobTimeout  = 5 * time.Minute
)

// Manager runs scheduled tasks through River.
// Manager embeds Enqueuer so registered tasks can also be triggered manually.
type Manager struct {
	*Enqueuer
	registry *taskRegistry
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager creates a job manager. The River client is created immediately,
// allowing jobs to be enqueued before Start() is called.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	if cfg.maxWorkers == 0 {
		cfg.maxWorkers = defaultMaxWorkers
	}
	if cfg.maxAttempts == 0 {
		cfg.maxAttempts = defaultMaxAttempts
	}
	if cfg.jobTimeout == 0 {
		cfg.jobTimeout = defaultJobTimeout
	}

	periodicJobs, err := buildPeriodicJobs(cfg)
	if err != nil {
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &taskWorker{
		registry: cfg.registry,
		logger:   cfg.logger,
		cancelIf: cfg.cancelIf,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: cfg.maxWorkers},
		},
		Workers:      workers,
		PeriodicJobs: periodicJobs,
		MaxAttempts:  cfg.maxAttempts,
		JobTimeout:   cfg.jobTimeout,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		Enqueuer: &Enqueuer{
			pool:   pool,
			client: client,
			logger: cfg.logger,
		},
		registry: cfg.registry,
		logger:   cfg.logger,
	}, nil
}

// buildPeriodicJobs registers every scheduled task and builds its River schedule.
func buildPeriodicJobs(cfg *config) ([]*river.PeriodicJob, error) {
	jobs := make([]*river.PeriodicJob, 0, len(cfg.schedules))
	for _, sched := range cfg.schedules {
		schedule, err := parseCronSchedule(sched.schedule, cfg.location)
		if err != nil {
			return nil, fmt.Errorf("%w: task %s: %q", err, sched.name, sched.schedule)
		}

		name := sched.name
		jobs = append(jobs, river.NewPeriodicJob(
			schedule,
			func() (river.JobArgs, *river.InsertOpts) {
				return &taskArgs{TaskName: name}, &river.InsertOpts{Tags: []string{"scheduled"}}
			},
			&river.PeriodicJobOpts{RunOnStart: cfg.runOnStart},
		))

		cfg.registry.register(name, &scheduledTaskExecutor{handler: sched.handler})
	}
	return jobs, nil
}

// Start begins processing jobs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}

	m.started = true
	m.logger.Info("job manager started",
		slog.Any("tasks", m.registry.names()),
	)

	return nil
}

// Stop waits for running jobs to finish, then stops the client.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}

	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}

	m.started = false
	m.logger.Info("job manager stopped")
	return nil
}

// Enqueue inserts a run of a registered task.
func (m *Manager) Enqueue(ctx context.Context, name string, opts ...EnqueueOption) (bool, error) {
	if _, ok := m.registry.get(name); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.Enqueuer.Enqueue(ctx, name, opts...)
}

// Shutdown returns a shutdown function for the job manager.
func (m *Manager) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Stop(ctx)
	}
}

// taskArgs is the River job arguments type for all digest tasks.
type taskArgs struct {
	TaskName string `json:"task_name"`
}

func (taskArgs) Kind() string {
	return "digest:task"
}

// taskWorker processes all tasks through the registry.
type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	registry *taskRegistry
	logger   *slog.Logger
	cancelIf func(error) bool
}

func (w *taskWorker) Work(ctx context.Context, job *river.Job[taskArgs]) error {
	executor, ok := w.registry.get(job.Args.TaskName)
	if !ok || executor == nil {
		return river.JobCancel(fmt.Errorf("%w: %s", ErrUnknownTask, job.Args.TaskName))
	}

	w.logger.DebugContext(ctx, "executing task",
		slog.String("task", job.Args.TaskName),
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)

	if err := executor.Execute(ctx); err != nil {
		cancel := w.cancelIf != nil && w.cancelIf(err)
		w.logger.ErrorContext(ctx, "task failed",
			slog.String("task", job.Args.TaskName),
			slog.Int64("job_id", job.ID),
			slog.Int("attempt", job.Attempt),
			slog.Int("max_attempts", job.MaxAttempts),
			slog.Bool("cancelled", cancel),
			slog.Any("error", err),
		)
		if cancel {
			return river.JobCancel(err)
		}
		return err
	}

	w.logger.DebugContext(ctx, "task completed",
		slog.String("task", job.Args.TaskName),
		slog.Int64("job_id", job.ID),
	)

	return nil
}
