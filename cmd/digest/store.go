package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/selector"
	"github.com/dmitrymomot/digest/pkg/store"
)

func (c *cli) activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "activity [light|stats|full]",
		Short:     "Run keep-alive queries against the content store",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "stats", "full"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var raw string
			if len(args) > 0 {
				raw = args[0]
			}
			level, err := store.ParseActivityLevel(raw)
			if err != nil {
				return err
			}

			a, closeApp, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer closeApp()

			report, err := a.Store().Activity(ctx, level)
			if err != nil {
				return err
			}
			return writeActivity(cmd.OutOrStdout(), report)
		},
	}
}

func writeActivity(w io.Writer, r *store.ActivityReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "level\t%s\n", r.Level)
	fmt.Fprintf(tw, "queries\t%d\n", r.Queries)
	fmt.Fprintf(tw, "rows\t%d\n", r.Rows)
	fmt.Fprintf(tw, "duration\t%s\n", r.Duration.Round(time.Millisecond))
	if s := r.Stats; s != nil {
		fmt.Fprintf(tw, "letters\t%d\n", s.Letters)
		fmt.Fprintf(tw, "recipients\t%d\n", s.Recipients)
		fmt.Fprintf(tw, "average words\t%.0f\n", s.AverageWordCount)
		if !s.FirstLetter.IsZero() {
			fmt.Fprintf(tw, "date range\t%s .. %s\n", s.FirstLetter.Format(time.DateOnly), s.LastLetter.Format(time.DateOnly))
		}
		fmt.Fprintf(tw, "jobs\t%d\n", s.Jobs)
		for _, plan := range slices.Sorted(maps.Keys(s.JobsByPlan)) {
			fmt.Fprintf(tw, "jobs (%s)\t%d\n", plan, s.JobsByPlan[plan])
		}
	}
	return tw.Flush()
}

func (c *cli) upcomingCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List the letters of the coming days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}

			a, closeApp, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer closeApp()

			session, err := a.Store().Open(ctx)
			if err != nil {
				return err
			}
			defer session.Close()

			letters, err := selector.NewLetters(session,
				selector.WithLocation(c.cfg.Location),
				selector.WithLogger(c.log),
			).Upcoming(ctx, time.Now(), days)
			if err != nil {
				return err
			}
			return writeUpcoming(cmd.OutOrStdout(), letters)
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "how many days ahead to look")
	return cmd
}

func writeUpcoming(w io.Writer, letters []content.Letter) error {
	if len(letters) == 0 {
		_, err := fmt.Fprintln(w, "no upcoming letters")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tYEAR\tRECIPIENT\tTITLE")
	for _, l := range letters {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.MonthDay, l.Date.Format("2006"), l.Recipient, l.Title)
	}
	return tw.Flush()
}
