// Package logger configures structured JSON logging.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a slog.Logger writing JSON to w at the given minimum level.
func Setup(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON logger as the global slog default and returns it.
// A nil writer means os.Stdout.
func SetupDefault(w io.Writer, level slog.Leveler) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w, level)
	slog.SetDefault(logger)
	return logger
}
