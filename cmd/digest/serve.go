package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/digest/pkg/health"
	"github.com/dmitrymomot/digest/pkg/job"
	"github.com/dmitrymomot/digest/pkg/pipeline"
)

// jobTimeoutSlack leaves River room to record the outcome after the
// pipeline's own deadline fires.
const jobTimeoutSlack = 30 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run scheduled digests and serve health endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := c.cfg.ValidateDispatch(); err != nil {
				return err
			}

			a, closeApp, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer closeApp()

			p, err := a.Pipeline()
			if err != nil {
				return err
			}

			manager, err := job.NewManager(a.Pool(),
				job.WithScheduledTask(pipeline.NewTask(p, c.cfg.Schedule)),
				job.WithLogger(c.log),
				job.WithLocation(c.cfg.Location),
				job.WithMaxAttempts(c.cfg.MaxAttempts),
				job.WithJobTimeout(c.cfg.RunTimeout+jobTimeoutSlack),
				job.WithCancelIf(permanent),
				job.WithRunOnStart(runOnStart),
			)
			if err != nil {
				return err
			}
			if err := manager.Start(ctx); err != nil {
				return err
			}

			checks := a.Checks()
			checks["jobs"] = job.Healthcheck(manager)

			c.log.InfoContext(ctx, "scheduler running",
				slog.String("schedule", c.cfg.Schedule),
				slog.String("timezone", c.cfg.Location.String()),
			)

			return health.Serve(ctx, health.ServerConfig{
				Handler:       health.Router(checks, health.WithLogger(c.log)),
				Logger:        c.log,
				Address:       c.cfg.HTTPAddress,
				ShutdownHooks: []func(context.Context) error{manager.Shutdown()},
			})
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run the digest once when the scheduler starts")
	return cmd
}

// permanent reports whether a failed run should be cancelled rather than
// retried. Shutdown cancellations stay retryable.
func permanent(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return !pipeline.Retryable(err)
}
