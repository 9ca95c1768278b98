package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/data/closet.db", cfg.DBPath)
	assert.Equal(t, "/data/closet-images.db", cfg.ImageDBPath)
	assert.Equal(t, "openai", cfg.AIBackend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("AI_BACKEND", "anthropic")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "anthropic", cfg.AIBackend)
	assert.True(t, cfg.AssistantEnabled())
}

func TestAssistantDisabledWithoutKey(t *testing.T) {
	t.Setenv("AI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AssistantEnabled())
}
