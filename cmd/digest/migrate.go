package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/digest/pkg/db"
	"github.com/dmitrymomot/digest/pkg/job"
	"github.com/dmitrymomot/digest/pkg/store"
)

func (c *cli) migrateCmd() *cobra.Command {
	var skipQueue bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply content store and job queue migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, closeApp, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer closeApp()

			table := c.cfg.Database.MigrationsTable
			if err := store.Migrate(ctx, a.Pool(), table, c.log); err != nil {
				return err
			}
			version, err := db.MigrationVersion(ctx, a.Pool(), table)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "content schema at version %d\n", version)

			if skipQueue {
				return nil
			}
			if err := job.Migrate(ctx, a.Pool(), c.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "queue schema up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipQueue, "skip-queue", false, "do not migrate the job queue schema")
	return cmd
}
