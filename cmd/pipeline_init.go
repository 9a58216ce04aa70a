package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/uniqa/internal/config"
	"github.com/sells-group/uniqa/internal/fetcher"
	"github.com/sells-group/uniqa/internal/llm"
	"github.com/sells-group/uniqa/internal/pipeline"
	"github.com/sells-group/uniqa/internal/prompt"
	"github.com/sells-group/uniqa/internal/search"
	anthropicpkg "github.com/sells-group/uniqa/pkg/anthropic"
	"github.com/sells-group/uniqa/pkg/jina"
	"github.com/sells-group/uniqa/pkg/serper"
)

// initPipeline validates the configuration, builds the provider clients once
// and wires them into a Pipeline shared by every request.
func initPipeline(c *config.Config) (*pipeline.Pipeline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	profile, err := prompt.Load(c.Pipeline.Profile)
	if err != nil {
		return nil, eris.Wrap(err, "load domain profile")
	}

	client, err := newLLMClient(c)
	if err != nil {
		return nil, err
	}

	searcher, err := newSearcher(c, profile)
	if err != nil {
		return nil, err
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout:         time.Duration(c.Fetch.TimeoutSecs) * time.Second,
		MaxConnsPerHost: c.Fetch.MaxConnsPerHost,
		MaxBodyBytes:    c.Fetch.MaxBodyBytes,
		InsecureTLS:     c.Fetch.InsecureTLS,
	})
	if c.Fetch.InsecureTLS {
		zap.L().Warn("tls certificate verification disabled for page fetches")
	}

	zap.L().Info("pipeline initialized",
		zap.String("llm", c.LLM.Provider),
		zap.String("model", client.Model()),
		zap.String("search", searcher.Name()),
		zap.String("university", profile.University),
	)

	return pipeline.New(c.Pipeline, client, searcher, f, profile), nil
}

func newLLMClient(c *config.Config) (llm.Client, error) {
	switch c.LLM.Provider {
	case "openai":
		return llm.NewOpenAIClient(c.OpenAI.Key, c.OpenAI.BaseURL, c.LLM.Model), nil
	case "anthropic":
		return llm.NewAnthropicClient(anthropicpkg.NewClient(c.Anthropic.Key), c.LLM.Model), nil
	default:
		return nil, eris.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
}

// newSearcher builds the configured search backend. Providers that support
// site filtering are restricted to the profile's search site.
func newSearcher(c *config.Config, profile *prompt.Profile) (search.Searcher, error) {
	switch c.Search.Provider {
	case "serper":
		client := serper.NewClient(c.Serper.Key, serper.WithBaseURL(c.Serper.BaseURL))
		return search.NewSerperSearcher(client, c.Serper.GL, c.Serper.HL), nil
	case "jina":
		var opts []jina.Option
		if c.Jina.SearchBaseURL != "" {
			opts = append(opts, jina.WithSearchBaseURL(c.Jina.SearchBaseURL))
		}
		return search.NewJinaSearcher(jina.NewClient(c.Jina.Key, opts...), profile.SearchSite), nil
	default:
		return nil, eris.Errorf("unknown search provider %q", c.Search.Provider)
	}
}
