package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/digest/pkg/content"
)

func TestParsePlan(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "pending", "basic", "pro", "recruiter", "unlimited"} {
		p, err := content.ParsePlan(s)
		require.NoError(t, err, s)
		assert.Equal(t, content.Plan(s), p)
	}

	_, err := content.ParsePlan("enterprise")
	require.ErrorIs(t, err, content.ErrInvalidRecord)
}

func TestPlan_IsPriority(t *testing.T) {
	t.Parallel()

	assert.True(t, content.PlanRecruiter.IsPriority())
	assert.True(t, content.PlanPro.IsPriority())
	assert.False(t, content.PlanBasic.IsPriority())
	assert.False(t, content.PlanPending.IsPriority())
	assert.False(t, content.PlanUnlimited.IsPriority())
	assert.False(t, content.PlanUnset.IsPriority())
}

func TestParseSeniority(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"intern", "junior", "mid-level", "senior"} {
		v, err := content.ParseSeniority(s)
		require.NoError(t, err, s)
		assert.Equal(t, content.Seniority(s), v)
	}

	for _, s := range []string{"", "lead", "Senior"} {
		_, err := content.ParseSeniority(s)
		require.ErrorIs(t, err, content.ErrInvalidRecord, s)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := content.ParseKind("letters")
	require.NoError(t, err)
	assert.Equal(t, content.KindLetters, k)

	_, err = content.ParseKind("podcasts")
	require.ErrorIs(t, err, content.ErrInvalidRecord)
}

func TestJobSelection(t *testing.T) {
	t.Parallel()

	sel := content.JobSelection{
		Requested: 3,
		Picks: []content.JobPick{
			{Job: content.JobPosting{ID: "a"}, Reason: content.ReasonPriorityPlan},
			{Job: content.JobPosting{ID: "b"}, Reason: content.ReasonRecent},
		},
	}

	assert.Equal(t, 2, sel.Count())
	assert.False(t, sel.Empty())
	jobs := sel.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].ID)
	assert.Equal(t, "b", jobs[1].ID)

	assert.True(t, content.JobSelection{}.Empty())
}
