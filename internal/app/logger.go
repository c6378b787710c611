package app

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// newLogger creates and configures a new slog.Logger instance backed by a
// charm log handler. It does not set the global logger, allowing for
// isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level charmlog.Level
	switch levelStr {
	case "debug":
		level = charmlog.DebugLevel
	case "info":
		level = charmlog.InfoLevel
	case "warn":
		level = charmlog.WarnLevel
	case "error":
		level = charmlog.ErrorLevel
	default:
		level = charmlog.InfoLevel
	}

	formatter := charmlog.TextFormatter
	if formatStr == "json" {
		formatter = charmlog.JSONFormatter
	}

	handler := charmlog.NewWithOptions(outW, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Formatter:       formatter,
	})
	return slog.New(handler)
}
