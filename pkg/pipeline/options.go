package pipeline

import (
	"log/slog"
	"time"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithJobCount sets N for jobs digests. Default 10.
func WithJobCount(n int) Option {
	return func(p *Pipeline) {
		p.jobCount = n
	}
}

// WithExcludedSources drops job listings from these sources.
func WithExcludedSources(sources ...string) Option {
	return func(p *Pipeline) {
		p.excludedSources = sources
	}
}

// WithLocation sets where "today" is evaluated. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(p *Pipeline) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRunTimeout bounds a whole run. Zero means no deadline of its own.
func WithRunTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.runTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithLock serialises runs of the same kind and day through locks made by
// factory.
func WithLock(factory LockFactory) Option {
	return func(p *Pipeline) {
		p.locks = factory
	}
}

// WithDispatchLog skips days already recorded and records successful runs.
func WithDispatchLog(log DispatchLog) Option {
	return func(p *Pipeline) {
		p.dispatchLog = log
	}
}

// WithArchive uploads the HTML of every dispatched document.
func WithArchive(a Archiver) Option {
	return func(p *Pipeline) {
		p.archive = a
	}
}
