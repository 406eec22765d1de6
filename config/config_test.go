// ABOUTME: Tests for configuration precedence and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 30*time.Second, cfg.Insights.Timeout.Std())
	assert.Equal(t, 8765, cfg.Server.Port)
	assert.True(t, cfg.Charm.AutoSync)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: memory
insights:
  provider: openai
  model: gpt-4o
  timeout: 5s
server:
  port: 9000
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "openai", cfg.Insights.Provider)
	assert.Equal(t, "gpt-4o", cfg.Insights.Model)
	assert.Equal(t, 5*time.Second, cfg.Insights.Timeout.Std())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\ninsights:\n  provider: openai\n")
	t.Setenv("OPSLOG_PORT", "9100")
	t.Setenv("OPSLOG_BACKEND", "charm")
	t.Setenv("OPSLOG_CHARM_AUTO_SYNC", "false")
	t.Setenv("OPSLOG_INSIGHTS_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, BackendCharm, cfg.Storage.Backend)
	assert.False(t, cfg.Charm.AutoSync)
	assert.Equal(t, "sk-test", cfg.Insights.APIKey)
}

func TestInsightsKeyPrecedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem")
	t.Setenv("OPSLOG_INSIGHTS_API_KEY", "")
	assert.Equal(t, "gem", insightsKey("gemini"))
	assert.Empty(t, insightsKey("none"))

	t.Setenv("OPSLOG_INSIGHTS_API_KEY", "mine")
	assert.Equal(t, "mine", insightsKey("gemini"))
}

func TestAPIKeyIgnoredInYAML(t *testing.T) {
	path := writeConfig(t, "insights:\n  provider: none\n  api_key: leaked\n")
	t.Setenv("OPSLOG_INSIGHTS_API_KEY", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Insights.APIKey)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "insights:\n  timeout: soon\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"sqlite path", func(c *Config) { c.Storage.Path = "" }},
		{"provider", func(c *Config) { c.Insights.Provider = "llama" }},
		{"timeout", func(c *Config) { c.Insights.Timeout = 0 }},
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"level", func(c *Config) { c.Log.Level = "trace" }},
	}

	require.NoError(t, Defaults().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultPathFromEnv(t *testing.T) {
	t.Setenv("OPSLOG_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())
}
