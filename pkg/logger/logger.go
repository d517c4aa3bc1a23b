package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a leveled key/value logger. Call sites pass alternating keys and
// values: log.Info("Cache hit", "key", key).
type Logger struct {
	*slog.Logger
}

func NewLogger(level string) *Logger {
	return New(os.Stdout, level)
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() *Logger {
	return New(io.Discard, "error")
}

// New writes JSON log lines to w.
func New(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
