package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestNew_Fallback(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "warn"

	logger, cleanup, err := New(cfg, &buf)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	logger.Info("hidden")
	logger.Warn("shown", slog.String("type", "Root"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "type=Root")
}

func TestNew_File(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.FilePath = filepath.Join(t.TempDir(), "logs", "modelgen.log")

	logger, cleanup, err := New(cfg, &buf)
	require.NoError(t, err)

	logger.Debug("inferred type", slog.String("type", "RootA"))
	require.NoError(t, cleanup())

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "inferred type")
	assert.Empty(t, buf.String())
}
