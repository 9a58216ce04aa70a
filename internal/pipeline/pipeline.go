// Package pipeline answers a single question end to end: relevance check,
// option extraction, web context gathering and answer generation. Every
// stage is fail-soft, so Handle always produces a response.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/uniqa/internal/config"
	"github.com/sells-group/uniqa/internal/fetcher"
	"github.com/sells-group/uniqa/internal/llm"
	"github.com/sells-group/uniqa/internal/model"
	"github.com/sells-group/uniqa/internal/prompt"
	"github.com/sells-group/uniqa/internal/search"
)

// State is a step of the request lifecycle.
type State string

// Request states, in the order a request moves through them.
const (
	StateReceived     State = "received"
	StateClassified   State = "classified"
	StateOutOfDomain  State = "out_of_domain"
	StateSearching    State = "searching"
	StateContextReady State = "context_ready"
	StateSummarizing  State = "summarizing"
	StateAnswering    State = "answering"
	StateResponded    State = "responded"
)

// Pipeline composes the stages into the request/response contract. It holds
// no per-request state and is safe for concurrent use.
type Pipeline struct {
	classifier *Classifier
	aggregator *Aggregator
	generator  *Generator
	profile    *prompt.Profile
	model      string
	maxSources int
	maxOptions int
}

// New creates a Pipeline. The provider handles are shared by every request.
func New(cfg config.PipelineConfig, client llm.Client, s search.Searcher, f fetcher.Fetcher, profile *prompt.Profile) *Pipeline {
	maxSources := cfg.MaxSources
	if maxSources <= 0 || maxSources > model.MaxSources {
		maxSources = model.MaxSources
	}
	return &Pipeline{
		classifier: NewClassifier(client, profile),
		aggregator: NewAggregator(s, f, profile, cfg.TopN, cfg.WordLimit),
		generator:  NewGenerator(client, profile),
		profile:    profile,
		model:      client.Model(),
		maxSources: maxSources,
		maxOptions: cfg.MaxOptions,
	}
}

// Handle runs one question through the pipeline.
func (p *Pipeline) Handle(ctx context.Context, q model.Query) model.ResponseModel {
	start := time.Now()
	log := zap.L().With(zap.String("request_id", uuid.NewString()))

	enter(log, StateReceived)
	resp, path, nOptions := p.run(ctx, log, q)
	enter(log, StateResponded)

	log.Info("pipeline: request handled",
		zap.String("path", string(path)),
		zap.Int("options", nOptions),
		zap.Int("sources", len(resp.Sources)),
		zap.Bool("answered", resp.Answer != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp
}

// run returns the response, the branch taken and the number of options
// detected.
func (p *Pipeline) run(ctx context.Context, log *zap.Logger, q model.Query) (model.ResponseModel, State, int) {
	trailer := p.profile.Trailer(p.model)

	if strings.TrimSpace(q.Text) == "" {
		return model.NewResponse(q, nil, p.profile.Messages.EmptyQuery+trailer, nil), StateOutOfDomain, 0
	}

	verdict := p.classifier.Classify(ctx, q.Text)
	enter(log, StateClassified)
	if !verdict.Relevant {
		return model.NewResponse(q, nil, verdict.Reason+trailer, nil), StateOutOfDomain, 0
	}

	enter(log, StateSearching)
	question, options := ExtractOptions(q.Text, p.maxOptions)
	items := p.aggregator.Gather(ctx, question)
	sources := items.Sources(p.maxSources)
	enter(log, StateContextReady)

	if !options.Present() {
		enter(log, StateSummarizing)
		summary := p.generator.Summarize(ctx, items.Excerpts())
		return model.NewResponse(q, nil, summary+trailer, sources), StateSummarizing, 0
	}

	enter(log, StateAnswering)
	res := p.generator.Answer(ctx, question, strings.Join(items.Excerpts(), "\n"), options)
	return model.NewResponse(q, res.SelectedIndex, res.Reasoning+trailer, sources), StateAnswering, len(options)
}

func enter(log *zap.Logger, st State) {
	log.Debug("pipeline: state", zap.String("state", string(st)))
}
