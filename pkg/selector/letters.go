package selector

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/digest/pkg/content"
)

// Letters implements the temporal key lookup policy.
type Letters struct {
	source LetterSource
	cfg    *config
}

// NewLetters creates a letter selector reading from source.
func NewLetters(source LetterSource, opts ...Option) *Letters {
	return &Letters{source: source, cfg: newConfig(opts...)}
}

// Key returns the month-day key of now in the selector's location.
func (s *Letters) Key(now time.Time) content.MonthDay {
	return content.MonthDayOf(now.In(s.cfg.location))
}

// Today selects the letter whose month-day key matches now.
func (s *Letters) Today(ctx context.Context, now time.Time) (content.LetterSelection, error) {
	return s.ForKey(ctx, s.Key(now))
}

// ForKey selects the letter stored under key.
func (s *Letters) ForKey(ctx context.Context, key content.MonthDay) (content.LetterSelection, error) {
	letter, err := s.source.FindLetter(ctx, key)
	switch {
	case errors.Is(err, content.ErrNotFound):
		s.cfg.logger.InfoContext(ctx, "no letter for today", slog.String("month_day", key.String()))
		return content.LetterSelection{Key: key, Reason: content.ReasonNoContent}, nil
	case err != nil:
		return content.LetterSelection{}, errors.Join(ErrStoreUnavailable, err)
	}

	s.cfg.logger.InfoContext(ctx, "letter selected",
		slog.String("month_day", key.String()),
		slog.String("recipient", letter.Recipient),
	)

	return content.LetterSelection{Key: key, Letter: &letter, Reason: content.ReasonMonthDayMatch}, nil
}

// Upcoming returns the letters for the days after now, up to days ahead,
// in calendar order starting tomorrow.
func (s *Letters) Upcoming(ctx context.Context, now time.Time, days int) ([]content.Letter, error) {
	if days <= 0 {
		return nil, nil
	}
	local := now.In(s.cfg.location)
	keys := make([]content.MonthDay, 0, days)
	for i := 1; i <= days; i++ {
		keys = append(keys, content.MonthDayOf(local.AddDate(0, 0, i)))
	}
	letters, err := s.source.FindLetters(ctx, keys)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	slices.SortStableFunc(letters, func(a, b content.Letter) int {
		return slices.Index(keys, a.MonthDay) - slices.Index(keys, b.MonthDay)
	})
	return letters, nil
}
