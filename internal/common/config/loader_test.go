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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_BROKER_ADDRESS", "zeebe:26500")

	path := writeConfig(t, `
camunda:
  broker_address: ${TEST_BROKER_ADDRESS}
redis:
  address: localhost:6379
workers:
  generate-script-drafts:
    enabled: true
    timeout: 90000
  save-script:
    enabled: false
genai:
  api_key: test-key
  temperature: 0.7
knowledge:
  hook_count: 4
  seed: 7
agents:
  base_url: http://localhost:5678
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 8080, cfg.App.HTTPPort)
	assert.Equal(t, "test-key", cfg.GenAI.APIKey)
	assert.InDelta(t, 0.7, cfg.GenAI.Temperature, 0.0001)
	assert.Equal(t, "gemini-2.5-flash", cfg.GenAI.ResearchModel)
	assert.Equal(t, 4, cfg.Knowledge.HookCount)
	assert.Equal(t, uint64(7), cfg.Knowledge.Seed)
	assert.Equal(t, "script:library", cfg.Library.KeyPrefix)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 2, cfg.Redis.MinIdleConns)
	assert.Equal(t, 5000, cfg.Redis.DialTimeout)

	drafts := GetWorkerConfig(cfg, "generate-script-drafts")
	assert.True(t, drafts.Enabled)
	assert.Equal(t, 90*time.Second, drafts.TimeoutDuration())
	assert.Equal(t, 5, drafts.MaxJobsActive)
	assert.Equal(t, 3, drafts.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "save-script"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown-worker"))
}

func TestLoadFromFile_EnvFallbacks(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("N8N_BASE_URL", "https://agents.example.com")

	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
redis:
  address: localhost:6379
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GenAI.APIKey)
	assert.Equal(t, "https://agents.example.com", cfg.Agents.BaseURL)
	assert.Equal(t, 3, cfg.Knowledge.HookCount)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing broker", "redis:\n  address: localhost:6379\n"},
		{"missing redis", "camunda:\n  broker_address: localhost:26500\n"},
		{
			name: "negative hook count",
			body: "camunda:\n  broker_address: a\nredis:\n  address: b\nknowledge:\n  hook_count: -1\n",
		},
		{
			name: "relative agents url",
			body: "camunda:\n  broker_address: a\nredis:\n  address: b\nagents:\n  base_url: not-a-url\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
