package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultConfig(t *testing.T) {
	t.Parallel()

	logger := New(nil)
	assert.NotNil(t, logger)
}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{
		Output: &buf,
		Level:  slog.LevelInfo,
	})

	logger.Info("child spawned", "pid", 42)

	var entry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Contains(t, entry, "ts")
	assert.Contains(t, entry, "level")
	assert.Equal(t, "child spawned", entry["msg"])
	assert.Equal(t, float64(42), entry["pid"])
}

func TestNew_DebugToggle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Debug: true})
	logger.Debug("verbose detail")
	assert.Contains(t, buf.String(), "verbose detail")

	buf.Reset()
	logger = New(&Config{Output: &buf, Level: slog.LevelInfo})
	logger.Debug("hidden detail")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
