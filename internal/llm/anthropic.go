package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/uniqa/pkg/anthropic"
)

// AnthropicClient adapts the Anthropic Messages API to Client.
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

// NewAnthropicClient creates a Client backed by client for model.
func NewAnthropicClient(client anthropic.Client, model string) *AnthropicClient {
	return &AnthropicClient{client: client, model: model}
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string { return c.model }

// Complete sends the prompt as a single user message.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  []anthropic.Message{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return "", eris.Wrapf(err, "llm: anthropic %s", req.Stage)
	}
	logUsage("anthropic", c.model, req.Stage, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	text := resp.Text()
	if text == "" {
		return "", eris.Wrapf(ErrEmptyCompletion, "llm: anthropic %s", req.Stage)
	}
	return text, nil
}
