package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
server:
  port: 9000
database:
  driver: mysql
lemonsqueezy:
  store_id: "1234"
  plans:
    - variant_id: "111"
      name: Monthly
      price: 9.99
      interval: month
      interval_count: 1
rate_limit:
  requests_per_minute: 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load("", writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "1234", cfg.LemonSqueezy.StoreID)
	require.Len(t, cfg.LemonSqueezy.Plans, 1)
	assert.Equal(t, "111", cfg.LemonSqueezy.Plans[0].VariantID)
	assert.InDelta(t, 9.99, cfg.LemonSqueezy.Plans[0].Price, 0.0001)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 20, cfg.Review.BatchSize)
	assert.Equal(t, "sb-access-token", cfg.Auth.CookieName)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("MASTERLY_SERVER_PORT", "7000")
	t.Setenv("MASTERLY_RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("", writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvArgumentSetsMode(t *testing.T) {
	cfg, err := Load("production", writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Server.Mode)

	cfg, err = Load("default", writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load("", writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
