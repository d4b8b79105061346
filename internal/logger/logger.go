package logger

import (
	"log/slog"
	"os"
)

// New builds the service-wide JSON logger. Info level; debug output is left
// to ad-hoc local builds rather than a runtime switch.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "wardprints"))
}
