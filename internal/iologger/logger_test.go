package iologger

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ccslim/ccslim/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.input), v.input)
	}
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first run")
	require.NoError(t, Init(dir, cfg, true))
	slog.Info("appended")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "appended")

	require.NoError(t, Init(dir, cfg, false))
	data, err = os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Empty(t, data, "fresh log file")
}

func TestInitMissingDir(t *testing.T) {
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "none", "deeper"), cfg, false)
	assert.Error(t, err)
}

func TestInitFormats(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	tests := []struct {
		format, want string
	}{
		{"json", `"gap":"NaN"`},
		{"text", "gap=NaN"},
		{"tint", "gap=NaN"},
	}

	for _, v := range tests {
		dir := t.TempDir()
		cfg := config.LogConfig{Format: v.format, Level: "debug", Destination: "file"}
		require.NoError(t, Init(dir, cfg, false), v.format)
		slog.Debug("Coverage checked", "gap", math.NaN(), "rows", 3)

		data, err := os.ReadFile(filepath.Join(dir, LogFile))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Coverage checked", v.format)
		assert.Contains(t, string(data), v.want, v.format)
		assert.NotContains(t, string(data), "\x1b[", v.format)
		assert.NotContains(t, string(data), "!ERROR", v.format)
	}
}

func TestInitLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "file"}
	require.NoError(t, Init(dir, cfg, false))
	slog.Info("hidden")
	slog.Warn("shown")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
