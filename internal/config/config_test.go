package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 5000, cfg.Run.GraceMs)
	assert.Equal(t, "term", cfg.Run.Signal)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 4, cfg.History.TailKB)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFile_Overrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
run:
  grace_ms: 1500
  signal: int
history:
  enabled: false
  tail_kb: 16
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.Run.GraceMs)
	assert.Equal(t, "int", cfg.Run.Signal)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 16, cfg.History.TailKB)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromFile_InvalidSignal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  signal: kill\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t-- not yaml"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestDefaultPaths(t *testing.T) {
	t.Parallel()

	p := DefaultPaths()
	assert.NotEmpty(t, p.ConfigDir)
	assert.NotEmpty(t, p.DataDir)
	assert.Equal(t, filepath.Join(p.ConfigDir, "config.yaml"), p.ConfigFile())
	assert.Equal(t, filepath.Join(p.DataDir, "history.db"), p.HistoryDB())
}
