package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/db"
	"github.com/dmitrymomot/digest/pkg/logger"
	"github.com/dmitrymomot/digest/pkg/selector"
	"github.com/dmitrymomot/digest/pkg/store"
)

// setupPool connects to a disposable database named by DIGEST_TEST_DATABASE_URL.
// Tables are truncated before use.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("DIGEST_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("DIGEST_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{ConnectionString: url, RetryAttempts: 1, MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, store.Migrate(ctx, pool, "schema_migrations", logger.NewNope()))
	_, err = pool.Exec(ctx, `TRUNCATE jobs, letters, dispatch_log`)
	require.NoError(t, err)

	return pool
}

func TestStore_Selection(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	insertJob := func(id, plan, source string, age time.Duration) {
		t.Helper()
		var p, s any
		if plan != "" {
			p = plan
		}
		if source != "" {
			s = source
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO jobs (id, slug, title, seniority, plan, source, created_at) VALUES ($1, $1, $1, 'junior', $2, $3, $4)`,
			id, p, s, base.Add(-age))
		require.NoError(t, err)
	}

	for i, id := range []string{"r1", "r2", "r3"} {
		insertJob(id, "recruiter", "", time.Duration(i+10)*time.Hour)
	}
	for i := range 10 {
		insertJob("b"+string(rune('a'+i)), "basic", "", time.Duration(i)*time.Hour)
	}
	insertJob("p1", "pending", "", 0)
	insertJob("x1", "pro", "eu-rss", 0)

	_, err := pool.Exec(ctx, `INSERT INTO letters (recipient, letter_date, body) VALUES
		('Theo', '1888-07-14', 'first'), ('Wil', '1970-07-14', 'second'), ('Anna', '1971-12-31', 'third')`)
	require.NoError(t, err)

	s := store.New(pool)
	session, err := s.Open(ctx)
	require.NoError(t, err)
	defer session.Close()

	sel, err := selector.NewJobs(session, selector.WithExcludedSources("eu-institution", "eu-rss")).Select(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 10, sel.Count())
	ids := make([]string, 0, 10)
	for _, j := range sel.Jobs() {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"r1", "r2", "r3", "ba", "bb", "bc", "bd", "be", "bf", "bg"}, ids)

	letters := selector.NewLetters(session)
	found, err := letters.Today(ctx, time.Date(2024, time.July, 14, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, found.Found())
	assert.Equal(t, "Theo", found.Letter.Recipient)
	assert.Equal(t, "88", found.Letter.YearShort)

	missing, err := letters.Today(ctx, time.Date(2024, time.July, 15, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, missing.Found())

	upcoming, err := letters.Upcoming(ctx, time.Date(2023, time.December, 30, 6, 0, 0, 0, time.UTC), 20)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Anna", upcoming[0].Recipient)

	session.Close()
	_, err = session.FindJobs(ctx, selector.JobQuery{Limit: 1})
	assert.ErrorIs(t, err, store.ErrSessionClosed)
}

func TestStore_DispatchLog(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	s := store.New(pool)

	day := time.Date(2024, time.July, 14, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	done, err := s.WasDispatched(ctx, content.KindLetters, day)
	require.NoError(t, err)
	assert.False(t, done)

	entry := store.DispatchEntry{RunDate: day, Kind: content.KindLetters, CampaignID: "bc_1", Subject: "Letter", Count: 1}
	require.NoError(t, s.RecordDispatch(ctx, entry))
	require.NoError(t, s.RecordDispatch(ctx, entry))

	done, err = s.WasDispatched(ctx, content.KindLetters, day)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = s.WasDispatched(ctx, content.KindJobs, day)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestStore_Activity(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	s := store.New(pool)

	_, err := pool.Exec(ctx, `INSERT INTO letters (recipient, letter_date, body, word_count) VALUES
		('Theo', '1970-07-14', 'a', 100), ('Theo', '1971-01-02', 'b', 300)`)
	require.NoError(t, err)

	light, err := s.Activity(ctx, store.ActivityLight)
	require.NoError(t, err)
	assert.Equal(t, int64(2), light.Rows)

	stats, err := s.Activity(ctx, store.ActivityStats)
	require.NoError(t, err)
	require.NotNil(t, stats.Stats)
	assert.Equal(t, int64(2), stats.Stats.Letters)
	assert.Equal(t, int64(1), stats.Stats.Recipients)
	assert.InDelta(t, 200.0, stats.Stats.AverageWordCount, 0.001)

	full, err := s.Activity(ctx, store.ActivityFull)
	require.NoError(t, err)
	assert.Equal(t, 5, full.Queries)
}
