package model

// SearchHit is a single ranked link returned by the search provider.
type SearchHit struct {
	Link    string `json:"link"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Rank    int    `json:"rank"`
}

// FetchResult holds the raw body of a fetched page. An empty Body means the
// source is unusable; transport failures are reported the same way.
type FetchResult struct {
	URL  string
	Body string
}

// Usable reports whether the fetch produced any content.
func (r FetchResult) Usable() bool {
	return r.Body != ""
}

// ContextItem pairs a cleaned excerpt with the URL it was extracted from.
type ContextItem struct {
	Excerpt string `json:"excerpt"`
	Source  string `json:"source"`
}

// ContextItems is the aggregated, rank-ordered context for one question.
type ContextItems []ContextItem

// Excerpts returns the excerpts in order.
func (c ContextItems) Excerpts() []string {
	out := make([]string, len(c))
	for i, item := range c {
		out[i] = item.Excerpt
	}
	return out
}

// Sources returns at most limit source URLs in order. A non-positive limit
// returns every source.
func (c ContextItems) Sources(limit int) []string {
	n := len(c)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = c[i].Source
	}
	return out
}
