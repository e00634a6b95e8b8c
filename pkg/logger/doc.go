// Package logger provides structured logging with context extraction and Sentry integration.
//
// This package extends log/slog with automatic context-based attribute
// injection and optional Sentry error reporting. Records go to stderr so
// commands such as `digest preview` can write documents to stdout.
//
// # Basic Usage
//
// Every digest run carries a run identifier in its context. RunIDExtractor
// copies it onto each record:
//
//	log := logger.New(slog.LevelInfo, "json", logger.RunIDExtractor())
//
//	ctx := logger.WithRunID(context.Background(), uuid.NewString())
//	log.InfoContext(ctx, "digest dispatched", slog.String("campaign_id", id))
//	// {"level":"INFO","msg":"digest dispatched","campaign_id":"...","run_id":"..."}
//
// # Sentry Integration
//
// For production error tracking, use NewWithSentry:
//
//	cfg := logger.Config{
//		Level:  "info",
//		Format: "json",
//		Sentry: logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN"), Environment: "production"},
//	}
//
//	log := logger.NewWithSentry(cfg, logger.RunIDExtractor())
//	defer logger.Flush(2 * time.Second)
//
//	// Errors create Issues in Sentry, warnings are stored for context
//	log.ErrorContext(ctx, "digest run failed", slog.Any("error", err))
//
// If SENTRY_DSN is empty, the logger gracefully falls back to stdout-only logging,
// making it safe to use the same code path in development and production.
//
// # Context Extractors
//
// A ContextExtractor is a function that extracts a log attribute from context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors are called on every log call, ensuring fresh values for request-scoped data.
// Return false from the extractor to skip adding the attribute for that log entry.
//
// # Handler Decoration
//
// The LogHandlerDecorator can wrap any slog.Handler to add context extraction:
//
//	// Wrap a custom handler
//	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
//	decorated := logger.NewLogHandlerDecorator(jsonHandler, extractors...)
//	log := slog.New(decorated)
//
// This allows using context extractors with any handler implementation.
//
// # Architecture
//
// The package uses several design patterns:
//
// Decorator Pattern: LogHandlerDecorator wraps any slog.Handler, intercepting
// Handle calls to inject extracted attributes before delegating to the underlying handler.
//
// Multi-Handler Pattern: An internal multiHandler forwards logs to multiple destinations,
// enabling simultaneous stdout and Sentry logging.
//
// Graceful Degradation: Sentry integration fails gracefully - if DSN is missing or
// initialization fails, logging continues to stdout without disruption.
package logger
