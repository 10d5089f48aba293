package completion

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient requests completions from the OpenAI chat API
type OpenAIClient struct {
	apiKey    string
	model     string
	maxTokens int
	client    *openai.Client
	logger    *zap.Logger
}

// NewOpenAIClient creates a new OpenAI completer. A missing API key is only
// reported when Complete is called.
func NewOpenAIClient(config *Config, logger *zap.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	clientConfig.OrgID = config.OpenAIOrg
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &OpenAIClient{
		apiKey:    config.OpenAIKey,
		model:     model,
		maxTokens: config.MaxTokens,
		client:    openai.NewClientWithConfig(clientConfig),
		logger:    logger,
	}
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Complete sends prompt as a single user message
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", c.fail(KindAuthentication, ErrMissingAPIKey)
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: c.maxTokens,
	}

	c.logger.Debug("Sending chat completion request",
		zap.String("model", c.model),
		zap.Int("max_tokens", c.maxTokens),
		zap.Int("prompt_length", len(prompt)))

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.fail(classifyOpenAIError(err), err)
	}

	if len(resp.Choices) == 0 {
		return "", c.fail(KindMalformedResponse, ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", c.fail(KindMalformedResponse, ErrEmptyResponse)
	}

	c.logger.Debug("Chat completion received",
		zap.Int("choices", len(resp.Choices)),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return text, nil
}

func (c *OpenAIClient) fail(kind ErrorKind, err error) error {
	c.logger.Error("Error generating flashcards",
		zap.String("provider", c.Name()),
		zap.Stringer("kind", kind),
		zap.Error(err))
	return newError(c.Name(), kind, err)
}

// classifyOpenAIError maps go-openai errors to an ErrorKind
func classifyOpenAIError(err error) ErrorKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if kind := kindFromStatus(apiErr.HTTPStatusCode); kind != KindUnknown {
			return kind
		}
		if apiErr.Type == "insufficient_quota" {
			return KindRateLimit
		}
		return KindUnknown
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindFromStatus(reqErr.HTTPStatusCode)
	}

	// A success status with a body that is not a chat completion
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return KindMalformedResponse
	}

	if kind, ok := kindFromTransport(err); ok {
		return kind
	}

	return KindUnknown
}
