package log

import (
	"log/slog"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"Verbose": slog.LevelInfo,
	}
	for value, want := range cases {
		t.Setenv("LOG_LEVEL", value)
		if got := levelFromEnv(); got != want {
			t.Errorf("LOG_LEVEL=%q: got %v, want %v", value, got, want)
		}
	}
}
