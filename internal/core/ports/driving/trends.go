package driving

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// TrendService ranks terms and cuisines by decay-weighted popularity.
type TrendService interface {
	// TrendingTerms ranks active terms mentioned inside the window.
	TrendingTerms(ctx context.Context, opts domain.TrendOptions) ([]domain.TermTrend, error)

	// TrendingCuisines ranks cultural origins of active terms mentioned inside the window.
	TrendingCuisines(ctx context.Context, opts domain.TrendOptions) ([]domain.CuisineTrend, error)
}
