package main

import (
	"io"
	"log/slog"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// initLogger installs the default slog logger. The returned LevelVar lets
// a config reload change the level of the running logger.
func initLogger(out io.Writer, cfg LoggingConfig) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(parseLogLevel(cfg.Level))

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.With("component", "logger").Debug("Logger initialized",
		"level", cfg.Level,
		"json_format", cfg.JSONFormat,
	)
	return level
}

func parseLogLevel(s string) slog.Level {
	if l, ok := logLevels[s]; ok {
		return l
	}
	return slog.LevelInfo
}
