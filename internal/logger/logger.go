// Package logger builds the application's slog.Logger from configuration.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/auth-account-service/internal/config"
)

// NewLogger creates a slog.Logger honoring the configured level. Development
// environments get a human-readable text handler; everything else logs JSON.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)

	opts := &slog.HandlerOptions{
		Level: level,
		// Source locations are only worth the noise when debugging
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Application.Env, "development") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", cfg.Application.Name)
	logger.Info("logger initialized", "level", level)

	return logger
}

// parseLevel maps a configured level string to a slog.Level, falling back to
// info for anything unrecognized.
func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
