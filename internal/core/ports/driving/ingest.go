package driving

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// IngestService pulls posts from sources into the store.
type IngestService interface {
	// Ingest fetches from every configured source. A failing source is
	// recorded in the report and does not stop the others. When match is
	// set a matching run follows.
	Ingest(ctx context.Context, match bool) (domain.IngestReport, error)
}

// PostService exposes stored posts.
type PostService interface {
	// Recent returns the newest posts.
	Recent(ctx context.Context, limit int) ([]domain.Document, error)

	// Tags returns the term texts associated with a post.
	Tags(ctx context.Context, documentID int64) ([]string, error)
}
