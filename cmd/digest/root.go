package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/digest/internal/app"
	"github.com/dmitrymomot/digest/internal/config"
	"github.com/dmitrymomot/digest/pkg/logger"
	"github.com/dmitrymomot/digest/pkg/pipeline"
)

// cli carries the state shared by every command once the root pre-run has
// loaded the configuration.
type cli struct {
	envFiles []string
	cfg      *config.Config
	log      *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "digest",
		Short:         "Dispatch the daily digest campaign",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
		RunE: c.runOnce,
	}
	cmd.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "dotenv files to load (default .env)")

	cmd.AddCommand(
		c.serveCmd(),
		c.triggerCmd(),
		c.migrateCmd(),
		c.previewCmd(),
		c.testSendCmd(),
		c.activityCmd(),
		c.upcomingCmd(),
	)
	return cmd
}

func (c *cli) load() error {
	cfg, err := config.Load(c.envFiles...)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.NewWithSentry(cfg.Log, logger.RunIDExtractor()).
		With(slog.String("kind", cfg.Kind.String()))
	return nil
}

// open builds the App and returns a func that releases it.
func (c *cli) open(ctx context.Context) (*app.App, func(), error) {
	a, err := app.New(ctx, c.cfg, c.log)
	if err != nil {
		return nil, nil, err
	}
	return a, func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			c.log.WarnContext(ctx, "shutdown failed", slog.Any("error", err))
		}
	}, nil
}

func (c *cli) runOnce(cmd *cobra.Command, _ []string) error {
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

	if _, err := p.Run(ctx); err != nil {
		c.log.ErrorContext(ctx, "digest run failed",
			slog.Any("error", err),
			slog.Bool("retryable", pipeline.Retryable(err)),
		)
		return err
	}
	return nil
}
