// Package log builds the slog loggers used by timer queues and their hosts.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New constructs a JSON slog.Logger on stdout preconfigured at info level
func New(service string) *slog.Logger {
	return NewWithLevel(os.Stdout, service, slog.LevelInfo)
}

// NewWithLevel constructs a JSON slog.Logger writing to w at the provided level
func NewWithLevel(w io.Writer, service string, lvl slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})

	return slog.New(handler).With(slog.String("service", service))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown
// names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
