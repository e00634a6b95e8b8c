package selector

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/digest/pkg/logger"
)

type config struct {
	logger          *slog.Logger
	location        *time.Location
	excludedSources []string
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		logger:   logger.NewNope(),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a selector.
type Option func(*config)

// WithExcludedSources drops job postings coming from these distribution channels.
func WithExcludedSources(sources ...string) Option {
	return func(c *config) {
		for _, s := range sources {
			if s != "" {
				c.excludedSources = append(c.excludedSources, s)
			}
		}
	}
}

// WithLocation sets the location month-day keys are computed in.
// Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
