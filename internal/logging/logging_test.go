package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_NoFile(t *testing.T) {
	logger, err := New("", "debug")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel), "no-op logger drops everything")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomodial.log")

	logger, err := New(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("session complete", zap.String("kind", "work"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "session complete", record["msg"])
	assert.Equal(t, "work", record["kind"])
	assert.Contains(t, record, "time")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty")
	assert.Error(t, err)
}
