package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/uniqa/internal/cost"
	"github.com/sells-group/uniqa/internal/extract"
	"github.com/sells-group/uniqa/internal/fetcher"
	"github.com/sells-group/uniqa/internal/model"
	"github.com/sells-group/uniqa/internal/prompt"
	"github.com/sells-group/uniqa/internal/search"
)

var pricing = cost.NewCalculator(cost.DefaultRates())

// Aggregator gathers web context for a question: search, then fetch and
// extract every hit concurrently.
type Aggregator struct {
	searcher  search.Searcher
	fetcher   fetcher.Fetcher
	profile   *prompt.Profile
	topN      int
	wordLimit int
}

// NewAggregator creates an Aggregator. Non-positive topN and wordLimit fall
// back to 3 and extract.DefaultWordLimit.
func NewAggregator(s search.Searcher, f fetcher.Fetcher, profile *prompt.Profile, topN, wordLimit int) *Aggregator {
	if topN <= 0 {
		topN = 3
	}
	if wordLimit <= 0 {
		wordLimit = extract.DefaultWordLimit
	}
	return &Aggregator{
		searcher:  s,
		fetcher:   f,
		profile:   profile,
		topN:      topN,
		wordLimit: wordLimit,
	}
}

// Gather returns the excerpts that yielded content, paired with their source
// and in search-rank order. A search failure or an empty result set is an
// empty, valid context.
func (a *Aggregator) Gather(ctx context.Context, question string) model.ContextItems {
	query := a.profile.SearchQuery(question)
	log := zap.L().With(zap.String("search", a.searcher.Name()), zap.String("query", query))

	hits, err := a.searcher.Search(ctx, query, a.topN)
	if err != nil {
		log.Warn("aggregate: search failed", zap.Error(err))
		return nil
	}
	if len(hits) == 0 {
		log.Debug("aggregate: no search results")
		return nil
	}

	// Each goroutine owns one slot, so excerpts stay paired with the URL
	// they came from and rank order survives any completion order.
	slots := make([]model.ContextItem, len(hits))
	g, gctx := errgroup.WithContext(ctx)
	for i, hit := range hits {
		i, hit := i, hit
		g.Go(func() error {
			res := a.fetcher.Fetch(gctx, hit.Link)
			if !res.Usable() {
				return nil
			}
			slots[i] = model.ContextItem{
				Excerpt: extract.Text(res.Body, a.wordLimit),
				Source:  hit.Link,
			}
			return nil
		})
	}
	_ = g.Wait() // fetches never fail

	items := make(model.ContextItems, 0, len(slots))
	for _, item := range slots {
		if item.Excerpt != "" {
			items = append(items, item)
		}
	}
	log.Debug("aggregate: context ready",
		zap.Int("hits", len(hits)),
		zap.Int("usable", len(items)),
		zap.Float64("search_cost_usd", pricing.SearchQuery(a.searcher.Name())),
	)
	return items
}
