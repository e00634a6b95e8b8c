package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/dmitrymomot/digest/pkg/logger"
)

// Enqueuer inserts jobs without processing them. `digest trigger` uses it
// to hand a run to whichever `digest serve` process is working the queue.
type Enqueuer struct {
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	logger *slog.Logger
}

// EnqueuerOption configures an Enqueuer.
type EnqueuerOption func(*enqueuerConfig)

type enqueuerConfig struct {
	logger *slog.Logger
}

// WithEnqueuerLogger sets the enqueuer logger.
func WithEnqueuerLogger(l *slog.Logger) EnqueuerOption {
	return func(c *enqueuerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewEnqueuer creates an insert-only River client.
func NewEnqueuer(pool *pgxpool.Pool, opts ...EnqueuerOption) (*Enqueuer, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &enqueuerConfig{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create enqueuer client: %w", err)
	}

	return &Enqueuer{
		pool:   pool,
		client: client,
		logger: cfg.logger,
	}, nil
}

// Enqueue inserts a run of the named task. It reports false when a unique
// insert was skipped because an equivalent job already exists.
func (e *Enqueuer) Enqueue(ctx context.Context, name string, opts ...EnqueueOption) (bool, error) {
	args, insertOpts := buildJobArgs(name, opts...)

	res, err := e.client.Insert(ctx, args, insertOpts)
	if err != nil {
		return false, fmt.Errorf("job: enqueue: %w", err)
	}

	inserted := !res.UniqueSkippedAsDuplicate
	e.logger.InfoContext(ctx, "job enqueued",
		slog.String("task", name),
		slog.Int64("job_id", res.Job.ID),
		slog.Bool("inserted", inserted),
	)
	return inserted, nil
}

func buildJobArgs(name string, opts ...EnqueueOption) (*taskArgs, *river.InsertOpts) {
	args := &taskArgs{TaskName: name}

	enqCfg := &enqueueConfig{}
	for _, opt := range opts {
		opt(enqCfg)
	}

	insertOpts := &river.InsertOpts{}
	if enqCfg.scheduledAt != nil {
		insertOpts.ScheduledAt = *enqCfg.scheduledAt
	}
	if enqCfg.maxAttempts > 0 {
		insertOpts.MaxAttempts = enqCfg.maxAttempts
	}
	if len(enqCfg.tags) > 0 {
		insertOpts.Tags = enqCfg.tags
	}
	if enqCfg.uniqueFor > 0 {
		insertOpts.UniqueOpts = river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: enqCfg.uniqueFor,
		}
	}

	return args, insertOpts
}
