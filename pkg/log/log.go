// Package log configures the process-wide structured logger.
package log

import (
	"log/slog"
	"os"
)

// Every log line carries the service attribute so the API and the notifier
// are distinguishable in shared log storage.
const serviceName = "hciflow"

func Setup(logLevel string) {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler).With("service", serviceName))
}

func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
