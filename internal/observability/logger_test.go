// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/cdpdriver/internal/config"
)

// resetGlobalLogger restores test isolation around the global singleton.
func resetGlobalLogger() {
	once = sync.Once{}
	globalLogger.Store(nil)
}

// syncBuffer adapts a bytes.Buffer into a zapcore.WriteSyncer.
type syncBuffer struct {
	bytes.Buffer
}

func (b *syncBuffer) Sync() error { return nil }

func TestInitialize(t *testing.T) {
	t.Run("console format produces colorized single line output", func(t *testing.T) {
		resetGlobalLogger()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "cdpdriver-test",
			Colors:      config.ColorConfig{Info: "green"},
		}, &buf)

		GetLogger().Info("hello from the console encoder")

		out := buf.String()
		assert.Contains(t, out, "hello from the console encoder")
		assert.Contains(t, out, "cdpdriver-test.")
		assert.Contains(t, out, colorGreen)
	})

	t.Run("json format produces structured output", func(t *testing.T) {
		resetGlobalLogger()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "cdpdriver-test",
		}, &buf)

		GetLogger().Info("structured entry", zap.String("page", "tab-1"))

		line := strings.TrimSpace(buf.String())
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "structured entry", entry["msg"])
		assert.Equal(t, "tab-1", entry["page"])
	})

	t.Run("level below threshold is dropped", func(t *testing.T) {
		resetGlobalLogger()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "warn",
			Format:      "json",
			ServiceName: "cdpdriver-test",
		}, &buf)

		GetLogger().Info("should not appear")
		assert.Empty(t, buf.String())
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		resetGlobalLogger()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "chatty",
			Format:      "json",
			ServiceName: "cdpdriver-test",
		}, &buf)

		GetLogger().Debug("dropped at info level")
		GetLogger().Info("kept at info level")

		out := buf.String()
		assert.NotContains(t, out, "dropped at info level")
		assert.Contains(t, out, "kept at info level")
	})

	t.Run("log file receives json entries", func(t *testing.T) {
		resetGlobalLogger()
		var buf syncBuffer
		logFile := filepath.Join(t.TempDir(), "driver.log")

		Initialize(config.LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "cdpdriver-test",
			LogFile:     logFile,
			MaxSize:     1,
		}, &buf)

		GetLogger().Info("written to both cores")
		require.NoError(t, GetLogger().Sync())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "written to both cores")

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
		assert.Equal(t, "INFO", entry["level"])
	})
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	resetGlobalLogger()
	logger := GetLogger()
	require.NotNil(t, logger)
	// The fallback must be usable even without initialization.
	logger.Debug("fallback logger is alive")
}

func TestInitializeRunsOnce(t *testing.T) {
	resetGlobalLogger()
	var first, second syncBuffer

	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "one"}, &first)
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "two"}, &second)

	GetLogger().Info("only the first writer wins")
	assert.Contains(t, first.String(), "only the first writer wins")
	assert.Empty(t, second.String())
}

var _ zapcore.WriteSyncer = (*syncBuffer)(nil)
