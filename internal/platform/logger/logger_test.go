package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := ParseLevel(tt.name)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNewLoggerWritesJSONAtConfiguredLevel(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var buf bytes.Buffer
	l := newLogger(config.ServerConfig{LogLevel: "warn"}, &buf)

	l.Info("dropped")
	l.Warn("kept", "room", "u2")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "info record should be filtered at warn level")

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "u2", record["room"])
	assert.Same(t, l, slog.Default(), "logger should be installed as default")
}

func TestNewLoggerWritesToLogFile(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	path := filepath.Join(t.TempDir(), "taskman.log")
	var buf bytes.Buffer
	l := newLogger(config.ServerConfig{LogLevel: "info", LogFile: path}, &buf)

	l.Info("task created")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "task created")
	assert.Contains(t, buf.String(), "task created")
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	scoped := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, FromContextOrDefault(WithLogger(context.Background(), scoped), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	assert.Same(t, scoped, FromContext(WithLogger(context.Background(), scoped)))
}

func TestMigrationLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewMigrationLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	l.Printf("OK   %s (%v)\n", "00001_create_users.sql", "1ms")
	l.Fatalf("failed: %s", "boom")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, "OK   00001_create_users.sql (1ms)", first["msg"])
	assert.Equal(t, "migrations", first["component"])
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "ERROR", second["level"])
}
