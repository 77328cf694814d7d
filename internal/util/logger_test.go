package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("nonsense"))
}

func TestLoggerTextOutputFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "info"})
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Debug("hidden")
	logger.Info("shown", F("step", 3), F("cause", "tick"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] shown cause=tick step=3")
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "debug"})
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatJSON))

	logger.With(F("component", "player")).Warnf("slow %s", "tick")

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "slow tick", entry.Message)
	assert.Equal(t, "player", entry.Fields["component"])
}

func TestLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(LoggerOptions{Level: "info", File: path})
	require.NoError(t, err)

	logger.Errorf("failed: %d", 42)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ERROR] failed: 42")
}

func TestNewLoggerBadFile(t *testing.T) {
	_, err := NewLogger(LoggerOptions{File: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "debug"})
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	SetLogger(logger)
	defer CloseLogger()

	LogDebugf("step %d", 1)
	LogInfo("loaded", F("points", 2))

	assert.Contains(t, buf.String(), "[DEBUG] step 1")
	assert.Contains(t, buf.String(), "[INFO] loaded points=2")

	LogDebug("tick")
	LogInfof("%d clients", 2)
	LogWarnf("slow %s", "reload")
	LogErrorf("failed: %v", "boom")
	LogWarn("dropped client", F("client", "abc"))
	LogError("reload failed")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] tick")
	assert.Contains(t, out, "[INFO] 2 clients")
	assert.Contains(t, out, "[WARN] slow reload")
	assert.Contains(t, out, "[ERROR] failed: boom")
	assert.Contains(t, out, "[WARN] dropped client client=abc")
	assert.Contains(t, out, "[ERROR] reload failed")

	CloseLogger()
	LogInfo("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
