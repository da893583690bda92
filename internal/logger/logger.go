package logger

import (
	"log/slog"
	"os"
	"strings"
)

// L is the process-wide logger. Init must run once at startup, after the
// configuration is loaded; packages log through L afterwards.
var L *slog.Logger

// Init sets up the global structured logger with the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func Init(levelStr string) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		slog.Warn("invalid log level, defaulting to info", "configured", levelStr)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	L = slog.New(handler)
	slog.SetDefault(L)
}
