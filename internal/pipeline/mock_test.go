package pipeline

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/uniqa/internal/llm"
	"github.com/sells-group/uniqa/internal/model"
)

// --- LLM Mock ---

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Model() string {
	return "test-model"
}

// stage matches an llm.Request by pipeline stage.
func stage(name string) any {
	return mock.MatchedBy(func(r llm.Request) bool { return r.Stage == name })
}

// --- Searcher Mock ---

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, query string, topN int) ([]model.SearchHit, error) {
	args := m.Called(ctx, query, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchHit), args.Error(1)
}

func (m *mockSearcher) Name() string {
	return "mock"
}

// --- Fetcher Fake ---

// fakePage is what fakeFetcher serves for one URL.
type fakePage struct {
	body  string
	delay time.Duration
}

// fakeFetcher serves canned bodies; unknown URLs yield an empty result the
// way a 404 does.
type fakeFetcher struct {
	pages map[string]fakePage
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) model.FetchResult {
	p, ok := f.pages[url]
	if !ok {
		return model.FetchResult{URL: url}
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return model.FetchResult{URL: url}
		}
	}
	return model.FetchResult{URL: url, Body: p.body}
}

func hits(links ...string) []model.SearchHit {
	out := make([]model.SearchHit, len(links))
	for i, l := range links {
		out[i] = model.SearchHit{Link: l, Rank: i + 1}
	}
	return out
}

func page(text string) string {
	return "<html><head><script>var x = 1;</script></head><body><nav>Меню</nav><p>" + text + "</p></body></html>"
}
