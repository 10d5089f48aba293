package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{"", "openai"},
		{"openai", "openai"},
		{"OpenAI", "openai"},
		{"gemini", "gemini"},
		{" ollama ", "ollama"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			config := DefaultConfig()
			config.Provider = tt.provider

			completer, err := New(config, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, completer.Name())

			_, isBreaker := completer.(*Breaker)
			assert.True(t, isBreaker, "completer should be wrapped in a breaker")
		})
	}
}

func TestNew_DisableBreaker(t *testing.T) {
	config := DefaultConfig()
	config.DisableBreaker = true

	completer, err := New(config, nil)
	require.NoError(t, err)
	_, isOpenAI := completer.(*OpenAIClient)
	assert.True(t, isOpenAI)
}

func TestNew_Defaults(t *testing.T) {
	config := &Config{Provider: "openai", MaxTokens: -1}

	_, err := New(config, nil)
	require.NoError(t, err)
	assert.Equal(t, 2000, config.MaxTokens)

	completer, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", completer.Name())
}

func TestNew_UnknownProvider(t *testing.T) {
	config := DefaultConfig()
	config.Provider = "claude"

	_, err := New(config, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, "unknown completion provider: claude", err.Error())
}

func TestProviders(t *testing.T) {
	assert.Equal(t, []string{"gemini", "ollama", "openai"}, Providers())
}

func TestErrorKind_String(t *testing.T) {
	tests := map[ErrorKind]string{
		KindUnknown:           "unknown",
		KindAuthentication:    "authentication",
		KindNetwork:           "network",
		KindMalformedResponse: "malformed-response",
		KindRateLimit:         "rate-limit",
		KindUnavailable:       "unavailable",
		ErrorKind(42):         "unknown",
	}

	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("processing: %w", newError("openai", KindRateLimit, cause))

	assert.Equal(t, "processing: openai completion failed (rate-limit): boom", err.Error())
	assert.Equal(t, KindRateLimit, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUnknown, KindOf(cause))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{200, KindUnknown},
		{400, KindUnknown},
		{401, KindAuthentication},
		{403, KindAuthentication},
		{404, KindUnknown},
		{429, KindRateLimit},
		{500, KindUnavailable},
		{503, KindUnavailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, kindFromStatus(tt.status), "status %d", tt.status)
	}
}

func TestKindFromTransport(t *testing.T) {
	kind, ok := kindFromTransport(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	assert.True(t, ok)
	assert.Equal(t, KindNetwork, kind)

	kind, ok = kindFromTransport(fmt.Errorf("wrapped: %w", context.DeadlineExceeded))
	assert.True(t, ok)
	assert.Equal(t, KindNetwork, kind)

	_, ok = kindFromTransport(errors.New("plain"))
	assert.False(t, ok)
}
