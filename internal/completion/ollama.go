package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const defaultOllamaModel = "llama3"

// OllamaClient requests completions from a local Ollama server
type OllamaClient struct {
	model     string
	maxTokens int
	llm       *ollama.LLM
	logger    *zap.Logger
}

// NewOllamaClient creates a new Ollama completer. No request is made until Complete.
func NewOllamaClient(config *Config, logger *zap.Logger) (*OllamaClient, error) {
	model := config.Model
	if model == "" {
		model = defaultOllamaModel
	}

	serverURL := config.OllamaURL
	if serverURL == "" {
		serverURL = DefaultConfig().OllamaURL
	}

	llm, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaClient{
		model:     model,
		maxTokens: config.MaxTokens,
		llm:       llm,
		logger:    logger,
	}, nil
}

// Name returns the provider name
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Complete sends prompt to the generate endpoint of the server
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("Sending ollama request",
		zap.String("model", c.model),
		zap.Int("max_tokens", c.maxTokens),
		zap.Int("prompt_length", len(prompt)))

	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithMaxTokens(c.maxTokens))
	if err != nil {
		return "", c.fail(classifyOllamaError(err), err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", c.fail(KindMalformedResponse, ErrEmptyResponse)
	}

	return text, nil
}

func (c *OllamaClient) fail(kind ErrorKind, err error) error {
	c.logger.Error("Error generating flashcards",
		zap.String("provider", c.Name()),
		zap.Stringer("kind", kind),
		zap.Error(err))
	return newError(c.Name(), kind, err)
}

// classifyOllamaError maps langchaingo ollama errors to an ErrorKind
func classifyOllamaError(err error) ErrorKind {
	if errors.Is(err, ollama.ErrEmptyResponse) {
		return KindMalformedResponse
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return KindMalformedResponse
	}

	if kind, ok := kindFromTransport(err); ok {
		return kind
	}

	// The status error type is internal to langchaingo, its message starts with the HTTP status
	msg := err.Error()
	if len(msg) > 3 && msg[3] == ' ' {
		if status, convErr := strconv.Atoi(msg[:3]); convErr == nil {
			return kindFromStatus(status)
		}
	}

	return KindUnknown
}
