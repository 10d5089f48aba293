package models

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelsResponse = `{
  "object": "list",
  "data": [
    {"id": "gpt-4o-mini", "object": "model", "owned_by": "system"},
    {"id": "dall-e-3", "object": "model", "owned_by": "system"},
    {"id": "gpt-3.5-turbo", "object": "model", "owned_by": "openai"},
    {"id": "gpt-4o-mini-tts", "object": "model", "owned_by": "system"},
    {"id": "text-embedding-3-small", "object": "model", "owned_by": "system"},
    {"id": "chatgpt-4o-latest", "object": "model", "owned_by": "system"}
  ]
}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-api-key" {
			t.Errorf("Unexpected Authorization header %q", got)
		}
		if got := r.Header.Get("OpenAI-Organization"); got != "org-test" {
			t.Errorf("Unexpected organization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
	}
}

func TestChatModels(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, modelsResponse)
	lister := newLister("test-api-key", "org-test", srv.URL+"/v1")

	models, err := lister.ChatModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"chatgpt-4o-latest", "gpt-3.5-turbo", "gpt-4o-mini"}, models)
}

func TestListAvailableModels(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, modelsResponse)
	lister := newLister("test-api-key", "org-test", srv.URL+"/v1")

	var out bytes.Buffer
	require.NoError(t, lister.ListAvailableModels(context.Background(), &out))

	expected := "Available OpenAI chat models:\n" +
		"  chatgpt-4o-latest\n" +
		"  gpt-3.5-turbo (default)\n" +
		"  gpt-4o-mini\n"
	assert.Equal(t, expected, out.String())
}

func TestListAvailableModels_NoChatModels(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"object":"list","data":[{"id":"dall-e-3","object":"model"}]}`)
	lister := newLister("test-api-key", "org-test", srv.URL+"/v1")

	var out bytes.Buffer
	require.NoError(t, lister.ListAvailableModels(context.Background(), &out))
	assert.Contains(t, out.String(), "No chat models found")
}

func TestListAvailableModels_APIError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)
	lister := newLister("test-api-key", "org-test", srv.URL+"/v1")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list models")
}

func TestIsChatModel(t *testing.T) {
	tests := map[string]bool{
		"gpt-4o":                 true,
		"gpt-3.5-turbo":          true,
		"chatgpt-4o-latest":      true,
		"gpt-4o-mini-tts":        false,
		"gpt-4o-audio-preview":   false,
		"gpt-4o-realtime":        false,
		"gpt-4o-transcribe":      false,
		"dall-e-3":               false,
		"text-embedding-3-small": false,
	}

	for id, want := range tests {
		if got := isChatModel(id); got != want {
			t.Errorf("isChatModel(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(apiKey, os.Getenv("OPENAI_ORG_ID"))

	var out bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}
	if out.Len() == 0 {
		t.Error("Expected model listing output")
	}
}
