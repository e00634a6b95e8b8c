package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/digest/pkg/job"
	"github.com/dmitrymomot/digest/pkg/pipeline"
)

func (c *cli) triggerCmd() *cobra.Command {
	var (
		delay     time.Duration
		uniqueFor time.Duration
	)

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Enqueue a digest run for the serve workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, closeApp, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer closeApp()

			enqueuer, err := job.NewEnqueuer(a.Pool(), job.WithEnqueuerLogger(c.log))
			if err != nil {
				return err
			}

			opts := []job.EnqueueOption{
				job.MaxAttempts(c.cfg.MaxAttempts),
				job.Tags("manual"),
			}
			if delay > 0 {
				opts = append(opts, job.ScheduledIn(delay))
			}
			if uniqueFor > 0 {
				opts = append(opts, job.UniqueFor(uniqueFor))
			}

			name := pipeline.TaskName(c.cfg.Kind)
			inserted, err := enqueuer.Enqueue(ctx, name, opts...)
			if err != nil {
				return err
			}
			if !inserted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: already queued\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: queued\n", name)
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "in", 0, "delay before the run")
	cmd.Flags().DurationVar(&uniqueFor, "unique-for", time.Minute, "skip if the same run was queued within this window (0 disables)")
	return cmd
}
