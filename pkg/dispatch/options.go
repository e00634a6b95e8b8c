package dispatch

import (
	"log/slog"
	"time"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock overrides the time source used for receipts.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithDefaults fills the sender and audience of requests that leave them empty.
func WithDefaults(sender Sender, audienceID string) Option {
	return func(d *Dispatcher) {
		d.defaultSender = sender
		d.defaultAudience = audienceID
	}
}
