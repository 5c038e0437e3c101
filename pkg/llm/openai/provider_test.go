package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cassie-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestChatSendsParametersAndReturnsFirstChoice(t *testing.T) {
	var got capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"Hello there"},"finish_reason":"stop"},{"index":1,"message":{"role":"assistant","content":"ignored"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", server.URL, "gpt-4o-mini", time.Second)
	reply, err := provider.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "hi"},
	}, llm.WithMaxTokens(500), llm.WithTemperature(0.8))

	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.InDelta(t, 0.8, got.Temperature, 0.001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "persona", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestChatNoChoicesReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", server.URL, "gpt-4o-mini", time.Second)
	reply, err := provider.Generate(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "", reply)
}

func TestChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-wrong", server.URL, "gpt-4o-mini", time.Second)
	_, err := provider.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})

	assert.Error(t, err)
}

func TestModelOverride(t *testing.T) {
	var got capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", server.URL, "gpt-4o-mini", time.Second)
	_, err := provider.Generate(context.Background(), "hi", llm.WithModel("gpt-4o"))

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)
}
