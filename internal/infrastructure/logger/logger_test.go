package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"WARN", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNew_JSONToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "portal.log")

	log, err := New(&Config{
		Level:  "info",
		Format: "json",
		Output: logFile,
	})
	require.NoError(t, err)

	log.Info("session janitor started")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "session janitor started", entry["msg"])
	assert.NotEmpty(t, entry["time"])
	assert.NotEmpty(t, entry["caller"])
}

func TestNew_LevelFiltersEntries(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "portal.log")

	log, err := New(&Config{
		Level:  "warn",
		Format: "json",
		Output: logFile,
	})
	require.NoError(t, err)

	log.Info("suppressed")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "kept")
}

func TestNew_ConsoleFormat(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "portal.log")

	log, err := New(&Config{
		Level:  "debug",
		Format: "console",
		Output: logFile,
	})
	require.NoError(t, err)

	log.Debug("entitlements resolved")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "entitlements resolved")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(line), "{"))
}

func TestNew_StandardStreams(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", ""} {
		t.Run("output="+output, func(t *testing.T) {
			log, err := New(&Config{Level: "info", Format: "json", Output: output})
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNew_UnopenableOutput(t *testing.T) {
	_, err := New(&Config{
		Level:  "info",
		Format: "json",
		Output: filepath.Join(t.TempDir(), "missing", "portal.log"),
	})
	assert.Error(t, err)
}
