package llm

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*openai.ClientConfig)

// WithOpenAIHTTPClient overrides the HTTP client used for API calls.
func WithOpenAIHTTPClient(hc *http.Client) OpenAIOption {
	return func(c *openai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// NewOpenAIClient creates a client for model. An empty baseURL uses the
// public OpenAI endpoint.
func NewOpenAIClient(apiKey, baseURL, model string, opts ...OpenAIOption) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	for _, o := range opts {
		o(&cfg)
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string { return c.model }

// Complete sends the system and user prompt as a chat completion.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", eris.Wrapf(err, "llm: openai %s", req.Stage)
	}

	logUsage("openai", c.model, req.Stage, int64(resp.Usage.PromptTokens), int64(resp.Usage.CompletionTokens))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", eris.Wrapf(ErrEmptyCompletion, "llm: openai %s", req.Stage)
	}
	return resp.Choices[0].Message.Content, nil
}
