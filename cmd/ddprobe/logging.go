package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// newLogger builds the ddprobe logger. With a file configured, records go to a
// rotating JSON log instead of stderr. The returned closer must be closed on
// exit.
func newLogger(cfg LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), io.NopCloser(nil), nil
	}
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // MB
		MaxBackups: cfg.MaxBackups,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w, nil
}
