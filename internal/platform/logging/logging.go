package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lepinkainen/humanlog"
)

// ParseLevel maps debug, info, warn and error. Anything else reads as info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a JSON logger for format "json" and a human-readable one otherwise.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(humanlog.NewHandler(w, &humanlog.Options{Level: lvl}))
}

// Init installs the logger as the slog default.
func Init(w io.Writer, level, format string) {
	slog.SetDefault(New(w, level, format))
}
