package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for the optional log file.
const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// Setup initializes the application's logging system based on the provided
// configuration. It creates a structured JSON logger with the configured level,
// writing to stdout and, when LogFile is set, to a rotating file as well. The
// logger is also installed as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return newLogger(cfg, os.Stdout), nil
}

func newLogger(cfg config.ServerConfig, stdout io.Writer) *slog.Logger {
	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	out := stdout
	if cfg.LogFile != "" {
		out = io.MultiWriter(stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			Compress:   true,
		})
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// Unknown names map to info and report false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
