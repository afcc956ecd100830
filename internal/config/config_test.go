package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bmartins-dev/bruno-dev/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "OPENAI_API_KEY", "OPENAI_API_BASE", "OPENAI_MODEL",
		"OPENAI_MAX_TOKENS", "OPENAI_TIMEOUT_SECONDS", "CHAT_TRANSPORT",
		"CHAT_RELAY_URL", "CHAT_HISTORY_WINDOW", "DB_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, "https://api.openai.com", cfg.OpenAIAPIBase)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 800, cfg.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, config.TransportDirect, cfg.Transport)
	assert.Equal(t, 10, cfg.HistoryWindow)
	assert.Equal(t, "./site.db", cfg.DBPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "5")
	t.Setenv("CHAT_TRANSPORT", "relay")
	t.Setenv("CHAT_RELAY_URL", "https://example.com/api/openai")
	t.Setenv("CHAT_HISTORY_WINDOW", "6")

	cfg := config.Load()

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, config.TransportRelay, cfg.Transport)
	assert.Equal(t, "https://example.com/api/openai", cfg.RelayURL)
	assert.Equal(t, 6, cfg.HistoryWindow)
}

func TestBadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("CHAT_HISTORY_WINDOW", "lots")
	cfg := config.Load()
	assert.Equal(t, 10, cfg.HistoryWindow)
}
