package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/uniqa/internal/model"
	"github.com/sells-group/uniqa/pkg/serper"
)

// SerperSearcher queries Google through the Serper API.
type SerperSearcher struct {
	client serper.Client
	gl     string
	hl     string
}

// NewSerperSearcher creates a SerperSearcher with the given locale.
func NewSerperSearcher(client serper.Client, gl, hl string) *SerperSearcher {
	return &SerperSearcher{client: client, gl: gl, hl: hl}
}

// Name identifies the provider in logs.
func (s *SerperSearcher) Name() string { return "serper" }

// Search returns up to topN organic results.
func (s *SerperSearcher) Search(ctx context.Context, query string, topN int) ([]model.SearchHit, error) {
	resp, err := s.client.Search(ctx, serper.SearchRequest{
		Query: query,
		GL:    s.gl,
		HL:    s.hl,
		Num:   topN,
	})
	if err != nil {
		return nil, eris.Wrap(err, "search: serper")
	}

	hits := make([]model.SearchHit, 0, len(resp.Organic))
	for i, r := range resp.Organic {
		rank := r.Position
		if rank == 0 {
			rank = i + 1
		}
		hits = append(hits, model.SearchHit{
			Link:    r.Link,
			Title:   r.Title,
			Snippet: r.Snippet,
			Rank:    rank,
		})
	}
	return normalizeHits(hits, topN), nil
}
