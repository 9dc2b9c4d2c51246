package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// MigrationLogger adapts a slog.Logger to the Printf/Fatalf logger
// interface expected by goose.
type MigrationLogger struct {
	logger *slog.Logger
}

// NewMigrationLogger tags logger with the migrations component.
func NewMigrationLogger(logger *slog.Logger) *MigrationLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &MigrationLogger{logger: logger.With(slog.String("component", "migrations"))}
}

// Printf logs a goose progress line at info level.
func (l *MigrationLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs a goose failure at error level. goose reports the same
// failure through its returned error, so this does not exit.
func (l *MigrationLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
