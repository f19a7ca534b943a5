package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-learning-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":" answer "},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", 0.7, time.Second)
	answer, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "q"},
		{Role: llm.RoleModel, Content: "a"},
	})

	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.False(t, got.Stream)
}

func TestChatEmptyMessageIsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":""},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", 0.7, time.Second)
	_, err := p.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, llm.ErrNoContent)
}
