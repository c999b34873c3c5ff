package driven

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// PostSource fetches posts from an external platform or file.
// Returned documents carry ExternalID, Source, Title, Body, CreatedAt
// and engagement; store fields (ID, MatchedAt) are left zero.
type PostSource interface {
	// Name identifies the source in reports and logs.
	Name() string

	// Fetch returns the posts currently available from the source.
	Fetch(ctx context.Context) ([]domain.Document, error)
}
