package httpapi

import (
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

// Ports holds the services the API reads from.
type Ports struct {
	Trends driving.TrendService
	Search driving.SearchService
	Posts  driving.PostService
}

// Options holds request defaults applied when a query parameter is absent.
type Options struct {
	TrendDays    int
	TrendLimit   int
	CuisineDays  int
	CuisineLimit int
	SearchDays   int
	SearchLimit  int
	PostLimit    int
	// AllowOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	AllowOrigin string
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		TrendDays:    7,
		TrendLimit:   20,
		CuisineDays:  7,
		CuisineLimit: 12,
		SearchDays:   30,
		SearchLimit:  20,
		PostLimit:    20,
		AllowOrigin:  "*",
	}
}
