package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/digest/pkg/mailer"
	mailresend "github.com/dmitrymomot/digest/pkg/mailer/resend"
	"github.com/dmitrymomot/digest/pkg/pipeline"
)

func (c *cli) previewCmd() *cobra.Command {
	var (
		date string
		out  string
		text bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the digest without dispatching it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			at, err := c.day(date)
			if err != nil {
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
			preview, err := p.Preview(ctx, at)
			if err != nil {
				return err
			}
			if preview.Empty() {
				fmt.Fprintln(cmd.ErrOrStderr(), emptyMessage(preview, at))
				return nil
			}

			body := preview.Document.HTML
			if text {
				body = preview.Document.Text
			}
			if out == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), body)
				return err
			}
			if err := os.WriteFile(out, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s\n", preview.Document.Subject, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to preview as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&text, "text", false, "output the plain-text part")
	return cmd
}

func (c *cli) testSendCmd() *cobra.Command {
	var (
		to   string
		date string
	)

	cmd := &cobra.Command{
		Use:   "test-send",
		Short: "Email the rendered digest to a single address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := c.cfg.ValidateMail(); err != nil {
				return err
			}
			at, err := c.day(date)
			if err != nil {
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
			preview, err := p.Preview(ctx, at)
			if err != nil {
				return err
			}
			if preview.Empty() {
				fmt.Fprintln(cmd.ErrOrStderr(), emptyMessage(preview, at))
				return nil
			}

			doc := preview.Document
			m := mailer.New(mailresend.New(c.cfg.Resend.Config), c.cfg.Mailer)
			if err := m.SendTest(ctx, to, doc.Subject, doc.HTML, doc.Text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %q to %s\n", doc.Subject, to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&date, "date", "", "day to render as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// day parses a YYYY-MM-DD flag in the configured location. Empty means now.
func (c *cli) day(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().In(c.cfg.Location), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, c.cfg.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", raw, err)
	}
	return t, nil
}

func emptyMessage(p *pipeline.Preview, at time.Time) string {
	if p.Key != "" {
		return fmt.Sprintf("no letter for %s", p.Key)
	}
	return fmt.Sprintf("nothing to send for %s", at.Format(time.DateOnly))
}
