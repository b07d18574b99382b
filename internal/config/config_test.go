package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.NoColor)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://blog.example.com\nlog_level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://from-file.example.com\n"), 0o600))

	t.Setenv(EnvAPIURL, "https://from-env.example.com")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvNoColor, "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env.example.com", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.NoColor)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{APIURL: "https://api.example.com", LogLevel: "error", NoColor: true}

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.APIURL, loaded.APIURL)
	assert.Equal(t, cfg.LogLevel, loaded.LogLevel)
	assert.True(t, loaded.NoColor)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestGetSet(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("api_url", "https://x.example.com"))
	v, err := cfg.Get("api_url")
	require.NoError(t, err)
	assert.Equal(t, "https://x.example.com", v)

	require.NoError(t, cfg.Set("log_level", "debug"))
	v, err = cfg.Get("log_level")
	require.NoError(t, err)
	assert.Equal(t, "debug", v)

	require.NoError(t, cfg.Set("no_color", "true"))
	v, err = cfg.Get("no_color")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}

func TestSetRejectsUnknownKey(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Set("theme", "dark"))
	_, err := cfg.Get("theme")
	assert.Error(t, err)
}

func TestSetRejectsInvalidValue(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Set("log_level", "verbose"))
	assert.Error(t, cfg.Set("api_url", ""))
}
