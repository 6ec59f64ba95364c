// Package logging configures the process-wide slog handler: colored
// tint output for local development, JSON for production.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures the default logger at the level from LOG_LEVEL.
// When production is true the handler emits JSON for log shippers;
// otherwise tint renders colored development output.
func Setup(production bool) {
	SetupWithLevel(levelFromEnv(), production)
}

// SetupWithLevel configures the default logger at an explicit level.
func SetupWithLevel(level slog.Level, production bool) {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
