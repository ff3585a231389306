// Package log configures the process-wide structured logger and names the
// fields shared across components so log lines stay queryable.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Common field names for structured logging.
const (
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldEntryID   = "entry_id"
	FieldAction    = "action"
	FieldSource    = "source"
	FieldBackend   = "backend"
	FieldPort      = "port"
)

// Setup installs a text slog handler as the process default and returns it.
// The level comes from LOG_LEVEL (debug, info, warn, error), defaulting to
// info when unset or unrecognized.
func Setup() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	}))
	slog.SetDefault(logger)
	return logger
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
