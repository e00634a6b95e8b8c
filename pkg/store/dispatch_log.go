package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/db"
)

// LogRetention is how long dispatch log rows are kept.
const LogRetention = 400 * 24 * time.Hour

// DispatchEntry records one successful dispatch.
type DispatchEntry struct {
	RunDate      time.Time // calendar day in the deployment's location
	DispatchedAt time.Time
	Kind         content.Kind
	CampaignID   string
	Subject      string
	Count        int
}

// WasDispatched reports whether kind already went out on day.
func (s *Store) WasDispatched(ctx context.Context, kind content.Kind, day time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM dispatch_log WHERE kind = $1 AND run_date = $2)`,
		kind.String(), dateOnly(day),
	).Scan(&exists)
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return exists, nil
}

// RecordDispatch stores e and prunes rows older than LogRetention.
// A second record for the same kind and day is ignored.
func (s *Store) RecordDispatch(ctx context.Context, e DispatchEntry) error {
	if e.DispatchedAt.IsZero() {
		e.DispatchedAt = time.Now()
	}
	day := dateOnly(e.RunDate)

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`INSERT INTO dispatch_log (kind, run_date, campaign_id, subject, item_count, dispatched_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (kind, run_date) DO NOTHING`,
			e.Kind.String(), day, e.CampaignID, e.Subject, e.Count, e.DispatchedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			s.logger.WarnContext(ctx, "dispatch already recorded",
				slog.String("kind", e.Kind.String()),
				slog.String("run_date", day.Format(time.DateOnly)),
				slog.String("campaign_id", e.CampaignID),
			)
		}
		_, err = tx.Exec(ctx, `DELETE FROM dispatch_log WHERE run_date < $1`, dateOnly(day.Add(-LogRetention)))
		return err
	})
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}

// dateOnly keeps the calendar date of t in its own location as UTC midnight,
// which pgx encodes as a DATE without shifting the day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
