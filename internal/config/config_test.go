package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_fuzzypath/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fuzzypath.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, config.Default(), *cfg)
}

func TestLoadMissingFileFails(t *testing.T) {
	cfg, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "open config")
	assert.False(t, exists)
	assert.Nil(t, cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9090
max_paths = 50

[warmup]
enabled = false

[logging]
file = "/var/log/fuzzypath.log"
json = false
`)

	cfg, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Address())
	assert.Equal(t, 50, cfg.Server.MaxPaths)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout())
	assert.False(t, cfg.WarmUp.Enabled)
	assert.Equal(t, 1000, cfg.WarmUp.Iterations)
	assert.Equal(t, "/var/log/fuzzypath.log", cfg.Logging.File)
	assert.False(t, cfg.Logging.JSON)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "[server]\nprot = 1\n")
	_, _, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"port":        "[server]\nport = 70000\n",
		"timeout":     "[server]\nread_timeout_seconds = 0\n",
		"concurrency": "[server]\nconcurrency = -1\n",
		"warmup":      "[warmup]\niterations = -5\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := config.Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestDefaultRoundTripsThroughTOML(t *testing.T) {
	out, err := toml.Marshal(config.Default())
	require.NoError(t, err)

	cfg, _, err := config.Load(writeConfig(t, string(out)))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}
