package selector

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/digest/pkg/content"
)

// Jobs implements the two-tier weighted recency policy.
type Jobs struct {
	source JobSource
	cfg    *config
}

// NewJobs creates a job selector reading from source.
func NewJobs(source JobSource, opts ...Option) *Jobs {
	return &Jobs{source: source, cfg: newConfig(opts...)}
}

// Select returns up to n jobs: priority-plan listings first, then the most
// recent general listings. Each tier keeps its newest-first order.
// Fewer than n jobs is a valid result.
func (s *Jobs) Select(ctx context.Context, n int) (content.JobSelection, error) {
	sel := content.JobSelection{Requested: n}
	if n <= 0 {
		return sel, nil
	}

	priority, err := s.source.FindJobs(ctx, PriorityQuery(n, s.cfg.excludedSources))
	if err != nil {
		return content.JobSelection{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(priority) > n {
		priority = priority[:n]
	}

	// Always issued, with a zero limit once the first tier is full.
	general, err := s.source.FindJobs(ctx, GeneralQuery(n-len(priority), s.cfg.excludedSources))
	if err != nil {
		return content.JobSelection{}, errors.Join(ErrStoreUnavailable, err)
	}
	if rest := n - len(priority); len(general) > rest {
		general = general[:rest]
	}

	sel.Picks = make([]content.JobPick, 0, len(priority)+len(general))
	for _, j := range priority {
		sel.Picks = append(sel.Picks, content.JobPick{Job: j, Reason: content.ReasonPriorityPlan})
	}
	for _, j := range general {
		if j.Plan == content.PlanPending {
			continue
		}
		sel.Picks = append(sel.Picks, content.JobPick{Job: j, Reason: content.ReasonRecent})
	}

	s.cfg.logger.DebugContext(ctx, "jobs selected",
		slog.Int("requested", n),
		slog.Int("priority", len(priority)),
		slog.Int("general", len(general)),
	)

	return sel, nil
}
