// Package search turns a question into a ranked, deduplicated list of links
// using a third-party web-search provider.
package search

import (
	"context"
	"strings"

	"github.com/sells-group/uniqa/internal/model"
)

// Searcher returns up to topN organic hits for a query, in rank order.
type Searcher interface {
	Search(ctx context.Context, query string, topN int) ([]model.SearchHit, error)
	Name() string
}

// normalizeHits keeps the first topN hits, drops entries without a link and
// removes duplicate links while keeping the best-ranked occurrence.
func normalizeHits(hits []model.SearchHit, topN int) []model.SearchHit {
	if topN > 0 && len(hits) > topN {
		hits = hits[:topN]
	}
	seen := make(map[string]bool, len(hits))
	out := make([]model.SearchHit, 0, len(hits))
	for _, h := range hits {
		link := strings.TrimSpace(h.Link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		h.Link = link
		out = append(out, h)
	}
	return out
}
