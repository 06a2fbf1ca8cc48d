package config

import (
	"log/slog"
	"os"
)

// NewLogger returns the application logger. Production emits JSON for log
// shipping; development emits text. LOG_LEVEL may be debug, info, warn, or
// error (default info).
//
// Handlers never log query strings: personalization parameters carry guest
// names and phone numbers.
func NewLogger() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "weddinginvites")
}

func parseLogLevel(s string) slog.Level {
	switch s {
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
