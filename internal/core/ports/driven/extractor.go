package driven

import (
	"context"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// PostExtractor runs a scraping job for a single post URL and returns
// the raw payload. Implementations own rate limiting and polling.
type PostExtractor interface {
	Extract(ctx context.Context, url, apiKey string) (domain.RawPost, error)
}
