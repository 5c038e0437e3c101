package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "LLM_MODEL", "LLM_MAX_TOKENS", "LLM_TEMPERATURE", "DB_CONNECTION_STRING")

	cfg := Load()

	assert.Equal(t, "gpt-4o-mini", cfg.Ai.LLMModel)
	assert.Equal(t, 500, cfg.Ai.MaxTokens)
	assert.InDelta(t, 0.8, cfg.Ai.Temperature, 0.0001)
	assert.Equal(t, "memory", cfg.Database.Connection)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("LLM_MAX_TOKENS", "256")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 256, cfg.Ai.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Ai.Temperature, 0.0001)
	assert.True(t, cfg.App.OtelEnabled)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvHelpersFallback(t *testing.T) {
	t.Setenv("CASSIE_TEST_INT", "not-a-number")
	t.Setenv("CASSIE_TEST_BOOL", "maybe")
	t.Setenv("CASSIE_TEST_FLOAT", "")
	unsetEnv(t, "CASSIE_TEST_UNSET_KEY")

	assert.Equal(t, 7, getEnvAsInt("CASSIE_TEST_INT", 7))
	assert.False(t, getEnvAsBool("CASSIE_TEST_BOOL", false))
	assert.InDelta(t, 1.5, getEnvAsFloat("CASSIE_TEST_FLOAT", 1.5), 0.0001)
	assert.Equal(t, "fallback", getEnv("CASSIE_TEST_UNSET_KEY", "fallback"))
}

func TestAPIKeysFor(t *testing.T) {
	keys := APIKeys{OpenAI: "sk-openai", HuggingFace: "hf-token"}

	assert.Equal(t, "hf-token", keys.For("huggingface"))
	assert.Equal(t, "sk-openai", keys.For("openai"))
	assert.Equal(t, "sk-openai", keys.For(""))
}
