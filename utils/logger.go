package utils

import (
	"log/slog"
	"os"
)

// SetupLogger installs the process-wide slog handler: JSON for production
// log aggregators, text for everything else.
func SetupLogger() {
	var handler slog.Handler
	switch os.Getenv("APP_ENV") {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}
