package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/digest/pkg/redis"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestLock_AcquireRelease(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	ctx := context.Background()

	first := redis.NewLock(client, "digest:letters:2024-07-14", time.Minute)
	second := redis.NewLock(client, "digest:letters:2024-07-14", time.Minute)

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("digest:letters:2024-07-14"))
	assert.Equal(t, time.Minute, mr.TTL("digest:letters:2024-07-14"))

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second owner must not take a held lock")

	// Releasing a lock never acquired leaves the holder alone.
	require.NoError(t, second.Release(ctx))
	assert.True(t, mr.Exists("digest:letters:2024-07-14"))

	require.NoError(t, first.Release(ctx))
	assert.False(t, mr.Exists("digest:letters:2024-07-14"))

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLock_ReleaseAfterExpiry(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	ctx := context.Background()

	stale := redis.NewLock(client, "digest:jobs:2024-07-14", time.Second)
	ok, err := stale.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	fresh := redis.NewLock(client, "digest:jobs:2024-07-14", time.Minute)
	ok, err = fresh.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// The stale owner's token no longer matches, so its release is a no-op.
	require.NoError(t, stale.Release(ctx))
	assert.True(t, mr.Exists("digest:jobs:2024-07-14"))

	require.NoError(t, fresh.Release(ctx))
	assert.False(t, mr.Exists("digest:jobs:2024-07-14"))
}

func TestLock_BackendDown(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	mr.Close()

	lock := redis.NewLock(client, "digest:jobs:2024-07-14", time.Minute)
	ok, err := lock.Acquire(context.Background())
	require.ErrorIs(t, err, redis.ErrLockUnavailable)
	assert.False(t, ok)
	assert.Equal(t, "digest:jobs:2024-07-14", lock.Key())

	_, err = redis.NewLock(nil, "k", time.Minute).Acquire(context.Background())
	require.ErrorIs(t, err, redis.ErrLockUnavailable)
}

func TestHealthcheck_Miniredis(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	check := redis.Healthcheck(client)
	require.NoError(t, check(context.Background()))

	mr.Close()
	require.ErrorIs(t, check(context.Background()), redis.ErrHealthcheckFailed)
}
