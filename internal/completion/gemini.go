package completion

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient requests completions from the Gemini API
type GeminiClient struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewGeminiClient creates a new Gemini completer. The underlying genai client
// is built per request since it refuses to start without a key.
func NewGeminiClient(config *Config, logger *zap.Logger) *GeminiClient {
	model := config.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiClient{
		apiKey:    config.GeminiKey,
		baseURL:   config.GeminiBaseURL,
		model:     model,
		maxTokens: config.MaxTokens,
		logger:    logger,
	}
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Complete sends prompt as a single user turn
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", c.fail(KindAuthentication, ErrMissingAPIKey)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		clientConfig.HTTPOptions.BaseURL = c.baseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", c.fail(KindAuthentication, err)
	}

	c.logger.Debug("Sending generate content request",
		zap.String("model", c.model),
		zap.Int("max_tokens", c.maxTokens),
		zap.Int("prompt_length", len(prompt)))

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(c.maxTokens),
	})
	if err != nil {
		return "", c.fail(classifyGeminiError(err), err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", c.fail(KindMalformedResponse, ErrEmptyResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", c.fail(KindMalformedResponse, ErrEmptyResponse)
	}

	return result, nil
}

func (c *GeminiClient) fail(kind ErrorKind, err error) error {
	c.logger.Error("Error generating flashcards",
		zap.String("provider", c.Name()),
		zap.Stringer("kind", kind),
		zap.Error(err))
	return newError(c.Name(), kind, err)
}

// classifyGeminiError maps genai errors to an ErrorKind
func classifyGeminiError(err error) ErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if kind := kindFromStatus(apiErr.Code); kind != KindUnknown {
			return kind
		}
		// Gemini answers an invalid key with 400 INVALID_ARGUMENT
		if strings.Contains(apiErr.Message, "API key not valid") {
			return KindAuthentication
		}
		return KindUnknown
	}

	if kind, ok := kindFromTransport(err); ok {
		return kind
	}

	return KindUnknown
}
