// Package logging configures the slog loggers used by the renderer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogFileName is the file created in the logs directory.
const LogFileName = "missioncard.log"

// ParseLevel converts a string log level to slog.Level,
// defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HandlerOptions returns the options shared by the text handlers,
// with RFC3339 UTC timestamps.
func HandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// Setup returns a logger writing to `file`, or to stdout if `file` is nil.
// Records are also sent to the `extra` handlers.
func Setup(file io.Writer, level string, extra ...slog.Handler) *slog.Logger {
	opts := HandlerOptions(ParseLevel(level))

	var out io.Writer = os.Stdout
	if file != nil {
		out = file
	}
	handlers := append([]slog.Handler{slog.NewTextHandler(out, opts)}, extra...)

	logger := slog.New(NewMultiHandler(handlers...))
	logger.Debug("Logging initialized", "level", level)
	return logger
}

// OpenLogFile creates (or appends to) the log file in `dir`.
func OpenLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
