// Package llm provides a provider-neutral text completion interface used by
// every model-backed pipeline stage.
package llm

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/uniqa/internal/cost"
)

// Request is one single-turn completion call.
type Request struct {
	// Stage names the pipeline stage for logging (e.g. "classify").
	Stage     string
	System    string
	Prompt    string
	MaxTokens int
}

// Client completes prompts against a single configured model.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Model returns the model identifier used for every call.
	Model() string
}

// defaultMaxTokens is used when a request leaves MaxTokens unset and the
// provider requires a value.
const defaultMaxTokens = 500

// ErrEmptyCompletion is returned when the provider answers with no text.
var ErrEmptyCompletion = eris.New("llm: empty completion")

var pricing = cost.NewCalculator(cost.DefaultRates())

// logUsage records token usage and the estimated cost of one completion.
func logUsage(provider, model, stage string, input, output int64) {
	zap.L().Debug("llm: usage",
		zap.String("provider", provider),
		zap.String("model", model),
		zap.String("stage", stage),
		zap.Int64("input_tokens", input),
		zap.Int64("output_tokens", output),
		zap.Float64("estimated_cost_usd", pricing.Completion(model, input, output)),
	)
}
