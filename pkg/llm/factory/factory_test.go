package factory

import (
	"testing"

	"cassie-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	for _, provider := range []string{"", "openai", "huggingface", "ollama"} {
		p, err := NewLLMProvider(Config{Provider: provider, Model: "m", APIKey: "k"})
		require.NoError(t, err, provider)
		assert.IsType(t, &openai.OpenAIProvider{}, p, provider)
	}

	_, err := NewLLMProvider(Config{Provider: "gemini"})
	assert.Error(t, err)
}

func TestOllamaCompatURL(t *testing.T) {
	tests := map[string]string{
		"":                         "http://localhost:11434/v1",
		"http://gpu-box:11434":     "http://gpu-box:11434/v1",
		"http://gpu-box:11434/":    "http://gpu-box:11434/v1",
		"http://gpu-box:11434/v1":  "http://gpu-box:11434/v1",
		"http://gpu-box:11434/v1/": "http://gpu-box:11434/v1",
	}
	for in, want := range tests {
		assert.Equal(t, want, ollamaCompatURL(in), in)
	}
}
