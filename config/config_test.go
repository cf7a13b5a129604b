package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("SFDIGEST_CONFIG_PATH", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/nightlydigest/api", cfg.BackendURL)
	assert.Equal(t, "Simonyi", cfg.Telescope)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.Retention.Days)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.NotContains(t, cfg.Cache.Path, "~")
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SFDIGEST_CONFIG_PATH", dir)
	t.Setenv("SFDIGEST_TELESCOPE", "AuxTel")
	t.Chdir(t.TempDir())

	body := `backend_url: https://usdf.example.org/nightlydigest/api
timeout: 10s
site:
  host_display_name: USDF
  retention_days: 30
cache:
  path: /tmp/sfdigest-cache
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sfdigest.yaml"), []byte(body), 0o600))

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "https://usdf.example.org/nightlydigest/api", cfg.BackendURL)
	assert.Equal(t, "AuxTel", cfg.Telescope)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "USDF", cfg.Retention.HostDisplayName)
	assert.Equal(t, 30, cfg.Retention.Days)
	assert.Equal(t, "/tmp/sfdigest-cache", cfg.Cache.Path)
	assert.False(t, cfg.Cache.Enabled)
}

func TestBadTimeout(t *testing.T) {
	t.Setenv("SFDIGEST_CONFIG_PATH", t.TempDir())
	t.Chdir(t.TempDir())
	v := New()
	v.Set("timeout", "0s")
	_, err := Load(v)
	assert.Error(t, err)
}
