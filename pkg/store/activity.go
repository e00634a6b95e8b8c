package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ActivityLevel selects how much work an activity run does.
type ActivityLevel string

const (
	// ActivityLight runs a single count query.
	ActivityLight ActivityLevel = "light"
	// ActivityStats gathers aggregate statistics concurrently.
	ActivityStats ActivityLevel = "stats"
	// ActivityFull samples the letters table the way readers would.
	ActivityFull ActivityLevel = "full"
)

// ErrUnknownActivity indicates an unsupported activity level.
var ErrUnknownActivity = errors.New("store: unknown activity level")

// ParseActivityLevel validates a level name. Empty means light.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch l := ActivityLevel(s); l {
	case "":
		return ActivityLight, nil
	case ActivityLight, ActivityStats, ActivityFull:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownActivity, s)
	}
}

// ActivityReport summarises an activity run.
type ActivityReport struct {
	Stats    *Stats
	Level    ActivityLevel
	Queries  int
	Rows     int64
	Duration time.Duration
}

// Stats describes the stored content.
type Stats struct {
	FirstLetter      time.Time
	LastLetter       time.Time
	JobsByPlan       map[string]int64
	Letters          int64
	Recipients       int64
	AverageWordCount float64
	Jobs             int64
}

// Activity keeps the database warm and reports what it touched.
func (s *Store) Activity(ctx context.Context, level ActivityLevel) (*ActivityReport, error) {
	start := time.Now()
	report := &ActivityReport{Level: level}

	switch level {
	case ActivityLight, "":
		report.Level = ActivityLight
		var n int64
		if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM letters`).Scan(&n); err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		report.Queries, report.Rows = 1, n
	case ActivityStats:
		stats, err := s.Stats(ctx)
		if err != nil {
			return nil, err
		}
		report.Stats = stats
		report.Queries = 4
	case ActivityFull:
		for _, q := range sampleQueries {
			n, err := s.countRows(ctx, q)
			if err != nil {
				return nil, err
			}
			report.Queries++
			report.Rows += n
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, level)
	}

	report.Duration = time.Since(start)
	s.logger.InfoContext(ctx, "database activity",
		slog.String("level", string(report.Level)),
		slog.Int("queries", report.Queries),
		slog.Int64("rows", report.Rows),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

var sampleQueries = []string{
	`SELECT id FROM letters ORDER BY letter_date DESC LIMIT 10`,
	`SELECT id FROM letters WHERE word_count < 100 ORDER BY word_count LIMIT 5`,
	`SELECT id FROM letters WHERE word_count > 1000 ORDER BY word_count DESC LIMIT 5`,
	`SELECT id FROM letters WHERE letter_date >= make_date(1970 + (random() * 15)::int, 1, 1)
		ORDER BY letter_date LIMIT 10`,
	`SELECT id FROM jobs ORDER BY created_at DESC LIMIT 10`,
}

func (s *Store) countRows(ctx context.Context, sql string) (int64, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	defer rows.Close()
	var n int64
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	return n, nil
}

// Stats runs the aggregate queries concurrently on separate pool connections.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var first, last *time.Time
		err := s.pool.QueryRow(ctx,
			`SELECT count(*), min(letter_date), max(letter_date) FROM letters`,
		).Scan(&stats.Letters, &first, &last)
		if first != nil {
			stats.FirstLetter = *first
		}
		if last != nil {
			stats.LastLetter = *last
		}
		return err
	})
	g.Go(func() error {
		return s.pool.QueryRow(ctx, `SELECT count(DISTINCT recipient) FROM letters`).Scan(&stats.Recipients)
	})
	g.Go(func() error {
		return s.pool.QueryRow(ctx,
			`SELECT COALESCE(avg(word_count), 0)::float8 FROM letters WHERE word_count IS NOT NULL`,
		).Scan(&stats.AverageWordCount)
	})

	byPlan := map[string]int64{}
	var jobs int64
	g.Go(func() error {
		rows, err := s.pool.Query(ctx, `SELECT COALESCE(plan, ''), count(*) FROM jobs GROUP BY 1`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				plan string
				n    int64
			)
			if err := rows.Scan(&plan, &n); err != nil {
				return err
			}
			if plan == "" {
				plan = "unset"
			}
			byPlan[plan] = n
			jobs += n
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	stats.JobsByPlan = byPlan
	stats.Jobs = jobs
	return stats, nil
}
