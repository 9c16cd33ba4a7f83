// Package logger constructs the slog logger used across the tool.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New initializes a slog logger writing to output (stderr when nil) at the
// given level. Format "json" selects the JSON handler; anything else falls
// back to the text handler.
func New(level slog.Level, format string, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}
