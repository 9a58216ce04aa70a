package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/uniqa/internal/llm"
	"github.com/sells-group/uniqa/internal/model"
	"github.com/sells-group/uniqa/internal/prompt"
)

// Completion budgets per stage.
const (
	classifyMaxTokens = 200
	answerMaxTokens   = 500
	summaryMaxTokens  = 500
)

// Classifier decides whether a question belongs to the target domain.
type Classifier struct {
	llm     llm.Client
	profile *prompt.Profile
}

// NewClassifier creates a Classifier.
func NewClassifier(client llm.Client, profile *prompt.Profile) *Classifier {
	return &Classifier{llm: client, profile: profile}
}

// Classify asks the model for a relevance verdict. Any provider or parse
// failure yields Relevant=false so the request takes the out-of-domain path.
func (c *Classifier) Classify(ctx context.Context, question string) model.ClassificationResult {
	fail := model.ClassificationResult{Relevant: false, Reason: c.profile.Messages.ClassifyFailed}

	p, err := c.profile.ClassifyPrompt(question)
	if err != nil {
		zap.L().Warn("classify: render prompt", zap.Error(err))
		return fail
	}

	text, err := c.llm.Complete(ctx, llm.Request{
		Stage:     "classify",
		System:    p.System,
		Prompt:    p.User,
		MaxTokens: classifyMaxTokens,
	})
	if err != nil {
		zap.L().Warn("classify: model call failed", zap.Error(err))
		return fail
	}

	parsed, err := prompt.ParseClassification(text)
	if err != nil {
		zap.L().Warn("classify: unparsable completion", zap.Error(err), zap.String("completion", text))
		return fail
	}

	reason := strings.TrimSpace(parsed.Reasoning)
	if reason == "" && !parsed.Relevant {
		reason = c.profile.Messages.OutOfDomain
	}
	zap.L().Debug("classify: verdict", zap.Bool("relevant", parsed.Relevant))
	return model.ClassificationResult{Relevant: parsed.Relevant, Reason: reason}
}
