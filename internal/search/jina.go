package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/uniqa/internal/model"
	"github.com/sells-group/uniqa/pkg/jina"
)

// JinaSearcher queries the Jina AI Search API.
type JinaSearcher struct {
	client jina.Client
	site   string
}

// NewJinaSearcher creates a JinaSearcher. A non-empty site restricts results
// to that domain.
func NewJinaSearcher(client jina.Client, site string) *JinaSearcher {
	return &JinaSearcher{client: client, site: site}
}

// Name identifies the provider in logs.
func (s *JinaSearcher) Name() string { return "jina" }

// Search returns up to topN results.
func (s *JinaSearcher) Search(ctx context.Context, query string, topN int) ([]model.SearchHit, error) {
	var opts []jina.SearchOption
	if s.site != "" {
		opts = append(opts, jina.WithSiteFilter(s.site))
	}

	resp, err := s.client.Search(ctx, query, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "search: jina")
	}

	hits := make([]model.SearchHit, 0, len(resp.Data))
	for i, r := range resp.Data {
		hits = append(hits, model.SearchHit{
			Link:    r.URL,
			Title:   r.Title,
			Snippet: r.Description,
			Rank:    i + 1,
		})
	}
	return normalizeHits(hits, topN), nil
}
