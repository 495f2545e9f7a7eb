package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pitdash.klederson.com/internal/signal"
)

func TestLoadSchemaDefault(t *testing.T) {
	schema, err := loadSchema("")
	require.NoError(t, err)
	require.Equal(t, 7, schema.Len())

	var buf bytes.Buffer
	printSchema(&buf, schema)
	require.Contains(t, buf.String(), "7 signals")
	require.Contains(t, buf.String(), "stale after 500ms")
}

func TestLoadSchemaMissing(t *testing.T) {
	_, err := loadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, signal.ErrNotFound)
}

func TestNewLogger(t *testing.T) {
	logger, closeLog, err := newLogger("", slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("discarded")
	closeLog()

	path := filepath.Join(t.TempDir(), "dash.log")
	logger, closeLog, err = newLogger(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("lap completed", "lap", 3)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "lap completed")
	require.Contains(t, string(data), "lap=3")
	require.NotContains(t, string(data), "hidden")
}
