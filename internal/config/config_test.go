package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setTestPaths redirects the platform paths into a temp directory so
// tests never touch the real user config or data dirs.
func setTestPaths(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	base := t.TempDir()
	configDir = filepath.Join(base, "config")
	dataDir = filepath.Join(base, "data")
	t.Setenv("CLIPSTASH_CONFIG_DIR", configDir)
	t.Setenv("CLIPSTASH_DATA_DIR", dataDir)
	return configDir, dataDir
}

func TestGetPaths(t *testing.T) {
	configDir, dataDir := setTestPaths(t)

	paths, err := GetPaths()
	require.NoError(t, err)

	assert.Equal(t, configDir, paths.ConfigDir)
	assert.Equal(t, filepath.Join(configDir, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, dataDir, paths.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "history.txt"), paths.HistoryFile)
	assert.Equal(t, filepath.Join(dataDir, "metrics.db"), paths.MetricsFile)
	assert.Equal(t, filepath.Join(dataDir, "logs"), paths.LogDir)

	// The directories are created as a side effect.
	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.LogDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestDefaultConfig(t *testing.T) {
	_, dataDir := setTestPaths(t)

	cfg := DefaultConfig()

	_, err := uuid.Parse(cfg.InstanceID)
	assert.NoError(t, err, "instance ID should be a valid UUID")
	assert.NotEmpty(t, cfg.DeviceName)

	assert.Equal(t, filepath.Join(dataDir, "history.txt"), cfg.History.FilePath)
	assert.Equal(t, 1000, cfg.History.MaxEntries)
	assert.Equal(t, 900, cfg.History.WarnThreshold)

	assert.Equal(t, int64(500), cfg.Monitor.PollingIntervalMs)
	assert.Equal(t, 500*time.Millisecond, cfg.Monitor.PollingInterval())

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, filepath.Join(dataDir, "metrics.db"), cfg.Metrics.DBPath)
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	configDir, _ := setTestPaths(t)
	configPath := filepath.Join(configDir, "config.yaml")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// The default config was written out for the next run.
	_, err = os.Stat(configPath)
	require.NoError(t, err)

	// A second load reads the same file back, so the instance
	// identity is stable across runs.
	again, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.InstanceID, again.InstanceID)
	assert.Equal(t, cfg.History.MaxEntries, again.History.MaxEntries)
}

func TestLoadUsesDefaultLocationWhenPathEmpty(t *testing.T) {
	configDir, _ := setTestPaths(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	_, err = os.Stat(filepath.Join(configDir, "config.yaml"))
	assert.NoError(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configDir, _ := setTestPaths(t)
	configPath := filepath.Join(configDir, "config.yaml")

	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(configPath, []byte("{not yaml"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	configDir, _ := setTestPaths(t)
	configPath := filepath.Join(configDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.DeviceName = "workstation"
	cfg.History.FilePath = "/tmp/custom-history.txt"
	cfg.History.MaxEntries = 250
	cfg.History.WarnThreshold = 200
	cfg.Monitor.PollingIntervalMs = 1000
	cfg.Metrics.Enabled = false
	require.NoError(t, cfg.Save(configPath))

	loaded, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, cfg.InstanceID, loaded.InstanceID)
	assert.Equal(t, "workstation", loaded.DeviceName)
	assert.Equal(t, "/tmp/custom-history.txt", loaded.History.FilePath)
	assert.Equal(t, 250, loaded.History.MaxEntries)
	assert.Equal(t, 200, loaded.History.WarnThreshold)
	assert.Equal(t, time.Second, loaded.Monitor.PollingInterval())
	assert.False(t, loaded.Metrics.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	configDir, _ := setTestPaths(t)
	configPath := filepath.Join(configDir, "config.yaml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.Save(configPath))

	t.Run("OverridesFileValues", func(t *testing.T) {
		t.Setenv("CLIPSTASH_DEVICE_NAME", "env-device")
		t.Setenv("CLIPSTASH_HISTORY_FILE", "/tmp/env-history.txt")
		t.Setenv("CLIPSTASH_MAX_ENTRIES", "42")
		t.Setenv("CLIPSTASH_WARN_THRESHOLD", "40")
		t.Setenv("CLIPSTASH_POLL_INTERVAL_MS", "250")

		loaded, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, "env-device", loaded.DeviceName)
		assert.Equal(t, "/tmp/env-history.txt", loaded.History.FilePath)
		assert.Equal(t, 42, loaded.History.MaxEntries)
		assert.Equal(t, 40, loaded.History.WarnThreshold)
		assert.Equal(t, 250*time.Millisecond, loaded.Monitor.PollingInterval())
	})

	t.Run("IgnoresInvalidNumbers", func(t *testing.T) {
		t.Setenv("CLIPSTASH_MAX_ENTRIES", "lots")

		loaded, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, 1000, loaded.History.MaxEntries)
	})

	t.Run("AppliesToFreshDefaults", func(t *testing.T) {
		t.Setenv("CLIPSTASH_MAX_ENTRIES", "77")

		loaded, err := Load(filepath.Join(configDir, "fresh.yaml"))
		require.NoError(t, err)

		assert.Equal(t, 77, loaded.History.MaxEntries)
	})
}
