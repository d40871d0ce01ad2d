package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns JSON logger with level taken from CLIKIT_LOG_LEVEL (default info).
func New() *slog.Logger {
	return NewJSON(os.Stderr, LevelFromEnv())
}

// NewJSON returns JSON logger writing to w.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// LevelFromEnv reads CLIKIT_LOG_LEVEL; unknown values fall back to info.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("CLIKIT_LOG_LEVEL"))
}

// ParseLevel parses slog level names ("debug", "warn", ...), default info.
func ParseLevel(s string) slog.Level {
	level := slog.LevelInfo
	if s != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(s)); err == nil {
			level = parsed
		}
	}
	return level
}
