package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxMessageBytes)
	assert.Equal(t, BroadcastModePartial, cfg.Broadcast.Mode)
	assert.Equal(t, 30*time.Second, cfg.Sweep.Interval)
	assert.Equal(t, 50, cfg.Logs.Capacity)
	assert.Equal(t, 4, cfg.Codes.SuffixLength)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9001
broadcast:
  mode: full
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, BroadcastModeFull, cfg.Broadcast.Mode)
	// Unset fields fall back to defaults
	assert.Equal(t, 30*time.Second, cfg.Sweep.Interval)
	assert.Equal(t, 50, cfg.Logs.Capacity)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("GAME_STATIC_DIR", "/srv/game/public")
	path := writeConfig(t, `
server:
  static_dir: ${GAME_STATIC_DIR}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/game/public", cfg.Server.StaticDir)
}

func TestLoadRejectsBadBroadcastMode(t *testing.T) {
	path := writeConfig(t, `
broadcast:
  mode: sometimes
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
