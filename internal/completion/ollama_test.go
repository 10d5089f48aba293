package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOllamaServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Config) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.Provider = "ollama"
	config.OllamaURL = server.URL
	return server, config
}

func TestOllamaClient_Complete(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	_, config := newTestOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"Question: Q1\nAnswer: A1\n"},"done":true}` + "\n"))
	})

	client, err := NewOllamaClient(config, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "ollama", client.Name())

	text, err := client.Complete(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "Question: Q1\nAnswer: A1", text)
	assert.Equal(t, "llama3", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "the prompt", got.Messages[0].Content)
}

func TestOllamaClient_Errors(t *testing.T) {
	t.Run("server unavailable", func(t *testing.T) {
		_, config := newTestOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("{}\n"))
		})
		client, err := NewOllamaClient(config, zap.NewNop())
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), "p")
		require.Error(t, err)
		assert.Equal(t, KindUnavailable, KindOf(err), "error: %v", err)
	})

	t.Run("empty answer", func(t *testing.T) {
		_, config := newTestOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":""},"done":true}` + "\n"))
		})
		client, err := NewOllamaClient(config, zap.NewNop())
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), "p")
		require.Error(t, err)
		assert.Equal(t, KindMalformedResponse, KindOf(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		server, config := newTestOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()
		client, err := NewOllamaClient(config, zap.NewNop())
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), "p")
		require.Error(t, err)
		assert.Equal(t, KindNetwork, KindOf(err), "error: %v", err)
	})
}

func TestClassifyOllamaError(t *testing.T) {
	assert.Equal(t, KindRateLimit, classifyOllamaError(errors.New("429 Too Many Requests")))
	assert.Equal(t, KindUnavailable, classifyOllamaError(errors.New("502 Bad Gateway: upstream")))
	assert.Equal(t, KindUnknown, classifyOllamaError(errors.New("model \"llama9\" not found")))
}
