package store

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/selector"
)

const jobColumns = `id, slug, title, company_name, seniority, plan, source, created_at,
	description, employment_type, salary, country, state, city, apply_link`

const letterColumns = `id, filename, recipient, letter_date, month_day, year_short,
	title, location, body, word_count`

// buildJobsQuery translates a selector query into SQL with positional args.
// Rows without a plan or source survive exclusion filters, matching
// selector.JobQuery.Matches.
func buildJobsQuery(q selector.JobQuery) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if len(q.Plans) > 0 {
		where = append(where, "plan = ANY("+arg(planStrings(q.Plans))+")")
	}
	if len(q.ExcludePlans) > 0 {
		where = append(where, "(plan IS NULL OR plan <> ALL("+arg(planStrings(q.ExcludePlans))+"))")
	}
	if len(q.ExcludeSources) > 0 {
		where = append(where, "(source IS NULL OR source <> ALL("+arg(q.ExcludeSources)+"))")
	}

	var b strings.Builder
	b.WriteString("SELECT " + jobColumns + " FROM jobs")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC LIMIT " + arg(q.Limit))

	return b.String(), args
}

func planStrings(plans []content.Plan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = string(p)
	}
	return out
}

const letterByKeyQuery = `SELECT ` + letterColumns + ` FROM letters
	WHERE month_day = $1
	ORDER BY letter_date, id
	LIMIT 1`

// One letter per key, the earliest, like letterByKeyQuery.
const lettersByKeysQuery = `SELECT DISTINCT ON (month_day) ` + letterColumns + ` FROM letters
	WHERE month_day = ANY($1)
	ORDER BY month_day, letter_date, id`
