package driving

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// SearchService provides relevance-ranked search over stored posts.
type SearchService interface {
	// Search ranks documents against a free-text query.
	// An empty query or an unknown term filter yields no results and no error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
