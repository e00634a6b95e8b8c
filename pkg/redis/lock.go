package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock is a single-owner lease on a Redis key (SET NX PX).
// A Lock is not safe for concurrent use; create one per run.
type Lock struct {
	client redis.Cmdable
	key    string
	token  string
	ttl    time.Duration
	held   bool
}

// NewLock prepares a lock on key. Nothing is sent to Redis until Acquire.
func NewLock(client redis.Cmdable, key string, ttl time.Duration) *Lock {
	return &Lock{
		client: client,
		key:    key,
		token:  uuid.NewString(),
		ttl:    ttl,
	}
}

// Key returns the locked key.
func (l *Lock) Key() string { return l.key }

// Acquire tries to take the lock once. It reports false without error
// when another owner holds it.
func (l *Lock) Acquire(ctx context.Context) (bool, error) {
	if l.client == nil {
		return false, ErrLockUnavailable
	}
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, errors.Join(ErrLockUnavailable, err)
	}
	l.held = ok
	return ok, nil
}

// Release frees the lock if this owner still holds it. Releasing a lock
// that expired or was never acquired is a no-op.
func (l *Lock) Release(ctx context.Context) error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return errors.Join(ErrLockUnavailable, err)
	}
	return nil
}
