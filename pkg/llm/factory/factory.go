package factory

import (
	"fmt"
	"strings"
	"time"

	"cassie-be/pkg/llm"
	"cassie-be/pkg/llm/openai"
)

const (
	// HuggingFaceRouterURL is the OpenAI-compatible inference router.
	HuggingFaceRouterURL = "https://router.huggingface.co/v1"
	DefaultOllamaURL     = "http://localhost:11434"
)

type Config struct {
	Provider string // "openai", "huggingface" or "ollama"
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewLLMProvider returns a chat client for cfg.Provider. Every backend is
// reached through its OpenAI-compatible endpoint.
func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	switch cfg.Provider {
	case "openai", "":
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "huggingface":
		return openai.NewOpenAIProvider(cfg.APIKey, orDefault(cfg.BaseURL, HuggingFaceRouterURL), cfg.Model, cfg.Timeout), nil
	case "ollama":
		// Ollama ignores the key but the client always sends one.
		return openai.NewOpenAIProvider("ollama", ollamaCompatURL(cfg.BaseURL), cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// ollamaCompatURL turns an Ollama host into its /v1 endpoint.
func ollamaCompatURL(host string) string {
	host = strings.TrimRight(orDefault(host, DefaultOllamaURL), "/")
	if strings.HasSuffix(host, "/v1") {
		return host
	}
	return host + "/v1"
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
