package selector

import (
	"context"
	"slices"

	"github.com/dmitrymomot/digest/pkg/content"
)

// JobQuery describes one filtered, newest-first read of job postings.
type JobQuery struct {
	// Plans restricts results to these plans. Empty means any plan.
	Plans []content.Plan
	// ExcludePlans drops these plans. Jobs without a plan are kept.
	ExcludePlans []content.Plan
	// ExcludeSources drops these sources. Jobs without a source are kept.
	ExcludeSources []string
	// Limit caps the number of rows. Zero returns no rows.
	Limit int
}

// JobSource executes job queries, newest first by creation time.
type JobSource interface {
	FindJobs(ctx context.Context, q JobQuery) ([]content.JobPosting, error)
}

// LetterSource looks letters up by month-day key.
type LetterSource interface {
	// FindLetter returns content.ErrNotFound when no letter has the key.
	FindLetter(ctx context.Context, key content.MonthDay) (content.Letter, error)
	// FindLetters returns letters stored under any of the keys, in any order.
	FindLetters(ctx context.Context, keys []content.MonthDay) ([]content.Letter, error)
}

var (
	priorityPlans = []content.Plan{content.PlanRecruiter, content.PlanPro}
	generalExcl   = []content.Plan{content.PlanPro, content.PlanPending, content.PlanRecruiter}
)

// PriorityQuery returns the first-tier query: recruiter and pro listings.
func PriorityQuery(limit int, excludeSources []string) JobQuery {
	return JobQuery{
		Plans:          slices.Clone(priorityPlans),
		ExcludeSources: slices.Clone(excludeSources),
		Limit:          max(limit, 0),
	}
}

// GeneralQuery returns the second-tier query: every listing that is neither
// priority nor pending.
func GeneralQuery(limit int, excludeSources []string) JobQuery {
	return JobQuery{
		ExcludePlans:   slices.Clone(generalExcl),
		ExcludeSources: slices.Clone(excludeSources),
		Limit:          max(limit, 0),
	}
}

// Matches reports whether a job satisfies the query filters (limit aside).
// Stores that filter in memory use it; SQL stores mirror the same rules.
func (q JobQuery) Matches(j content.JobPosting) bool {
	if len(q.Plans) > 0 && !slices.Contains(q.Plans, j.Plan) {
		return false
	}
	if j.Plan != content.PlanUnset && slices.Contains(q.ExcludePlans, j.Plan) {
		return false
	}
	if j.Source != "" && slices.Contains(q.ExcludeSources, j.Source) {
		return false
	}
	return true
}
