package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/storefront-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseLevel(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &TestLogBuffer{}
	logger := setupWithWriter(config.ServerConfig{LogLevel: "warn"}, buf)
	require.NotNil(t, logger)

	logger.Info("should be filtered")
	logger.Warn("should be written", "key", "value")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "should be written", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Same(t, logger, slog.Default(), "Setup should install the logger as default")
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewJSONHandler(&TestLogBuffer{}, nil))

	t.Run("empty context returns default", func(t *testing.T) {
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("context logger wins", func(t *testing.T) {
		ctxLogger := slog.New(slog.NewJSONHandler(&TestLogBuffer{}, nil))
		ctx := WithLogger(context.Background(), ctxLogger)
		assert.Same(t, ctxLogger, FromContextOrDefault(ctx, fallback))
	})

	t.Run("request id is attached", func(t *testing.T) {
		buf := &TestLogBuffer{}
		ctxLogger := slog.New(slog.NewJSONHandler(buf, nil))
		ctx := WithRequestID(WithLogger(context.Background(), ctxLogger), "req-123")

		FromContextOrDefault(ctx, fallback).Info("hello")

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "req-123", entries[0]["request_id"])
	})
}

func TestCaptureLogs(t *testing.T) {
	out := CaptureLogs(t, func(l *slog.Logger) {
		l.Debug("captured", "n", 1)
	})
	assert.Contains(t, out, `"msg":"captured"`)
}
