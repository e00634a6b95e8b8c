package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/selector"
)

func TestBuildJobsQuery(t *testing.T) {
	t.Parallel()

	t.Run("priority tier", func(t *testing.T) {
		t.Parallel()

		sql, args := buildJobsQuery(selector.PriorityQuery(10, []string{"eu-institution", "eu-rss"}))
		assert.Contains(t, sql, "FROM jobs WHERE plan = ANY($1) AND (source IS NULL OR source <> ALL($2))")
		assert.Contains(t, sql, "ORDER BY created_at DESC, id DESC LIMIT $3")
		require.Len(t, args, 3)
		assert.Equal(t, []string{"recruiter", "pro"}, args[0])
		assert.Equal(t, []string{"eu-institution", "eu-rss"}, args[1])
		assert.Equal(t, 10, args[2])
	})

	t.Run("general tier", func(t *testing.T) {
		t.Parallel()

		sql, args := buildJobsQuery(selector.GeneralQuery(7, nil))
		assert.Contains(t, sql, "WHERE (plan IS NULL OR plan <> ALL($1)) ORDER BY")
		// jobColumns selects source; only the exclusion predicate must be absent
		assert.NotContains(t, sql, "source IS NULL")
		assert.NotContains(t, sql, "source <> ALL")
		require.Len(t, args, 2)
		assert.Equal(t, []string{"pro", "pending", "recruiter"}, args[0])
		assert.Equal(t, 7, args[1])
	})

	t.Run("general tier with excluded sources", func(t *testing.T) {
		t.Parallel()

		sql, args := buildJobsQuery(selector.GeneralQuery(7, []string{"eu-rss"}))
		assert.Contains(t, sql, "WHERE (plan IS NULL OR plan <> ALL($1)) AND (source IS NULL OR source <> ALL($2)) ORDER BY")
		require.Len(t, args, 3)
		assert.Equal(t, []string{"eu-rss"}, args[1])
		assert.Equal(t, 7, args[2])
	})

	t.Run("no filters", func(t *testing.T) {
		t.Parallel()

		sql, args := buildJobsQuery(selector.JobQuery{Limit: 1})
		assert.NotContains(t, sql, "WHERE")
		assert.Equal(t, []any{1}, args)
	})
}

func TestJobRow(t *testing.T) {
	t.Parallel()

	str := func(s string) *string { return &s }
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	job, err := jobRow{
		ID:        "j1",
		Title:     "Analyst",
		Seniority: "mid-level",
		Plan:      str("recruiter"),
		Source:    str("company"),
		City:      str("Brussels"),
		CreatedAt: created,
	}.toJob()
	require.NoError(t, err)
	assert.Equal(t, content.SeniorityMid, job.Seniority)
	assert.Equal(t, content.PlanRecruiter, job.Plan)
	assert.Equal(t, "Brussels", job.City)
	assert.Empty(t, job.Country)
	assert.Equal(t, created, job.CreatedAt)

	job, err = jobRow{ID: "j2", Seniority: "senior"}.toJob()
	require.NoError(t, err)
	assert.Equal(t, content.PlanUnset, job.Plan)

	_, err = jobRow{ID: "j3", Seniority: "principal"}.toJob()
	assert.ErrorIs(t, err, content.ErrInvalidRecord)

	_, err = jobRow{ID: "j4", Seniority: "junior", Plan: str("gold")}.toJob()
	assert.ErrorIs(t, err, content.ErrInvalidRecord)
}

func TestLetterRow(t *testing.T) {
	t.Parallel()

	words := int32(412)
	date := time.Date(1970, time.July, 14, 0, 0, 0, 0, time.UTC)

	letter, err := letterRow{
		ID:         3,
		Recipient:  "Brahmananda",
		LetterDate: date,
		MonthDay:   "07-14",
		WordCount:  &words,
		Body:       "My dear Brahmananda,",
	}.toLetter()
	require.NoError(t, err)
	assert.Equal(t, content.MonthDay("07-14"), letter.MonthDay)
	assert.Equal(t, 412, letter.WordCount)
	assert.Equal(t, date, letter.Date)

	_, err = letterRow{ID: 4, LetterDate: date, MonthDay: "7-14"}.toLetter()
	assert.ErrorIs(t, err, content.ErrInvalidRecord)

	_, err = letterRow{ID: 5, LetterDate: date, MonthDay: "07-15"}.toLetter()
	assert.ErrorIs(t, err, content.ErrInvalidRecord)
}

func TestParseActivityLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]ActivityLevel{
		"":      ActivityLight,
		"light": ActivityLight,
		"stats": ActivityStats,
		"full":  ActivityFull,
	} {
		got, err := ParseActivityLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseActivityLevel("heavy")
	assert.ErrorIs(t, err, ErrUnknownActivity)
}

func TestDateOnly(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*60*60)
	got := dateOnly(time.Date(2024, time.January, 1, 1, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), got)
}
