package completion

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Completer sends one prompt and returns the trimmed text of the first choice
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds the settings for all completion providers
type Config struct {
	Provider  string // "openai", "gemini" or "ollama"
	Model     string // Empty selects the provider default
	MaxTokens int

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIOrg     string
	OpenAIBaseURL string // Empty uses the public API

	// Gemini-specific settings
	GeminiKey     string
	GeminiBaseURL string // Empty uses the public API

	// Ollama-specific settings
	OllamaURL string

	DisableBreaker bool
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		Provider:  "openai",
		MaxTokens: 2000,
		OllamaURL: "http://localhost:11434",
	}
}

// New creates the completer selected by config.Provider, wrapped in a circuit breaker
func New(config *Config, logger *zap.Logger) (Completer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultConfig().MaxTokens
	}

	var completer Completer
	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case "", "openai":
		completer = NewOpenAIClient(config, logger)
	case "gemini":
		completer = NewGeminiClient(config, logger)
	case "ollama":
		client, err := NewOllamaClient(config, logger)
		if err != nil {
			return nil, err
		}
		completer = client
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", config.Provider)
	}

	if config.DisableBreaker {
		return completer, nil
	}
	return NewBreaker(completer, logger), nil
}

// Providers lists the supported provider names
func Providers() []string {
	return []string{"gemini", "ollama", "openai"}
}
