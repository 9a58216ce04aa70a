// Package fetcher retrieves web pages for the context aggregator.
package fetcher

import (
	"context"

	"github.com/sells-group/uniqa/internal/model"
)

// Fetcher downloads a single page. Implementations never return an error:
// any failure is reported as a FetchResult with an empty Body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) model.FetchResult
}
