package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("Product titles", "count", 6)
	logger.Warn("Screenshot capture failed", "name", "01_logged_in")

	out := buf.String()
	assert.NotContains(t, out, "Product titles")
	assert.Contains(t, out, "Screenshot capture failed")
	assert.Contains(t, out, "name=01_logged_in")
}

func TestInit_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := Init(&buf, "debug")
	require.NoError(t, err)

	slog.Debug("via default")
	assert.Contains(t, buf.String(), "via default")
	assert.Same(t, logger, slog.Default())

	_, err = Init(&buf, "loud")
	assert.Error(t, err)
}
