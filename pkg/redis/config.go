package redis

import "time"

// Config holds pool and startup retry settings for the lock client.
// REDIS_URL stays on the application config because it also decides
// whether the lock is used at all.
type Config struct {
	PoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"4"`
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	DialTimeout   time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	Timeout       time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`
}

// Options converts the config into Open options. Zero fields keep defaults.
func (c Config) Options() []Option {
	var opts []Option
	if c.PoolSize > 0 {
		opts = append(opts, WithPoolSize(c.PoolSize))
	}
	if c.RetryAttempts > 0 {
		opts = append(opts, WithRetry(c.RetryAttempts, c.RetryInterval))
	}
	if c.DialTimeout > 0 {
		opts = append(opts, WithDialTimeout(c.DialTimeout))
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	return opts
}
