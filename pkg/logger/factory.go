package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a logger writing to stderr, leaving stdout for command output.
// Format "text" selects the human-readable handler; anything else is JSON.
func New(level slog.Level, format string, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newHandler(os.Stderr, level, format), extractors...))
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
