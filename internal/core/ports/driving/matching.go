package driving

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// MatchingService attaches vocabulary terms to stored posts.
type MatchingService interface {
	// Run matches candidate documents against the active vocabulary.
	// Concurrent calls are serialised.
	Run(ctx context.Context, opts domain.MatchOptions) (domain.MatchReport, error)
}
