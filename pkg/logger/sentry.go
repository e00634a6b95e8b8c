package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level
}

// NewWithSentry creates a logger that sends logs to both stderr and Sentry.
// If DSN is empty, only stderr logging is enabled.
// Context extractors are applied to logs sent to both destinations.
func NewWithSentry(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	level, err := ParseLevel(cfg.Level)
	stdoutHandler := newHandler(os.Stderr, level, cfg.Format)
	if err != nil {
		slog.New(stdoutHandler).Warn("falling back to info level", slog.String("error", err.Error()))
	}

	if cfg.Sentry.DSN == "" {
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		EnableLogs:  true,
	}); err != nil {
		// Graceful degradation: keep logging locally if Sentry init fails
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...))
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.Sentry.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel, // Errors create Issues in Sentry
		LogLevel:   logLevel,   // Logs stored for context/search
	}.NewSentryHandler(context.Background())

	combinedHandler := newMultiHandler(stdoutHandler, sentryHandler)

	return slog.New(NewLogHandlerDecorator(combinedHandler, extractors...))
}

// Flush waits for buffered Sentry events. One-shot commands call it before
// exiting so a failed run still reaches Sentry.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
