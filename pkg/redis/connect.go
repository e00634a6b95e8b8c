package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idle connections are dropped well before a daily run comes around again.
const (
	connMaxIdleTime = 10 * time.Minute
	connMaxLifetime = 30 * time.Minute
)

// Option configures Open.
type Option func(*options)

type options struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
	timeout       time.Duration
}

func defaultOptions() *options {
	return &options{
		poolSize:      4,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		dialTimeout:   5 * time.Second,
		timeout:       3 * time.Second,
	}
}

// WithPoolSize caps the number of pooled connections. Default: 4.
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithRetry sets how many pings Open attempts and the base wait between
// them. The wait grows linearly. Default: 3 attempts, 2s.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithDialTimeout bounds establishing a connection. Default: 5s.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithTimeout bounds each read and write. Default: 3s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Open parses a redis:// or rediss:// URL and pings the server, retrying
// until it answers or the attempts run out.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.ConnMaxIdleTime = connMaxIdleTime
	ro.ConnMaxLifetime = connMaxLifetime
	ro.DialTimeout = o.dialTimeout
	ro.ReadTimeout = o.timeout
	ro.WriteTimeout = o.timeout

	return connect(ctx, ro, o.retryAttempts, o.retryInterval)
}

func connect(ctx context.Context, ro *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	attempts = max(attempts, 1)
	var lastErr error
	for i := range attempts {
		client := redis.NewClient(ro)
		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == attempts-1 {
			break
		}
		if err := wait(ctx, time.Duration(i+1)*interval); err != nil {
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}
	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
