package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/uniqa/internal/llm"
	"github.com/sells-group/uniqa/internal/model"
	"github.com/sells-group/uniqa/internal/prompt"
)

// Generator produces the final answer: an option index when the question is
// multiple-choice, a free-form summary otherwise.
type Generator struct {
	llm     llm.Client
	profile *prompt.Profile
}

// NewGenerator creates a Generator.
func NewGenerator(client llm.Client, profile *prompt.Profile) *Generator {
	return &Generator{llm: client, profile: profile}
}

// Answer selects one of options using contextText. The returned index is always
// within [1, len(options)]; on provider or parse failure it is 1 and the
// reasoning explains the failure. Without options the result carries no
// index and the reasoning is a summary of contextText.
func (g *Generator) Answer(ctx context.Context, question, contextText string, options model.OptionSet) model.AnswerResult {
	if !options.Present() {
		return model.AnswerResult{Reasoning: g.Summarize(ctx, []string{contextText})}
	}

	fail := model.AnswerResult{SelectedIndex: intPtr(1), Reasoning: g.profile.Messages.AnswerFailed}

	p, err := g.profile.AnswerPrompt(question, contextText, options)
	if err != nil {
		zap.L().Warn("answer: render prompt", zap.Error(err))
		return fail
	}

	text, err := g.llm.Complete(ctx, llm.Request{
		Stage:     "answer",
		System:    p.System,
		Prompt:    p.User,
		MaxTokens: answerMaxTokens,
	})
	if err != nil {
		zap.L().Warn("answer: model call failed", zap.Error(err))
		return fail
	}

	choice, err := prompt.ParseChoice(text)
	if err != nil {
		zap.L().Warn("answer: unparsable completion", zap.Error(err), zap.String("completion", text))
		return fail
	}

	idx := clampIndex(choice.Index, choice.HasIndex, len(options))
	if !choice.HasIndex || idx != choice.Index {
		zap.L().Debug("answer: index coerced",
			zap.Int("raw", choice.Index),
			zap.Bool("present", choice.HasIndex),
			zap.Int("index", idx),
		)
	}
	return model.AnswerResult{SelectedIndex: intPtr(idx), Reasoning: choice.Reasoning}
}

// Summarize asks for a short synthesis of the excerpts. Empty context and
// provider failures both yield the fixed fallback text; the model is not
// called when there is nothing to summarize.
func (g *Generator) Summarize(ctx context.Context, excerpts []string) string {
	fallback := g.profile.Messages.SummaryFailed

	joined := strings.TrimSpace(strings.Join(excerpts, "\n"))
	if joined == "" {
		return fallback
	}

	p, err := g.profile.SummaryPrompt(joined)
	if err != nil {
		zap.L().Warn("summarize: render prompt", zap.Error(err))
		return fallback
	}

	text, err := g.llm.Complete(ctx, llm.Request{
		Stage:     "summarize",
		System:    p.System,
		Prompt:    p.User,
		MaxTokens: summaryMaxTokens,
	})
	if err != nil {
		zap.L().Warn("summarize: model call failed", zap.Error(err))
		return fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}

// clampIndex coerces a raw model index into [1, k]. A missing index is 1.
func clampIndex(raw int, present bool, k int) int {
	if !present || raw < 1 {
		return 1
	}
	if raw > k {
		return k
	}
	return raw
}

func intPtr(v int) *int { return &v }
