// Package tui provides the interactive terminal dashboard for foodtrend.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

// Ports aggregates the driving ports the dashboard reads from.
type Ports struct {
	// Trends ranks terms and cuisines.
	Trends driving.TrendService

	// Search ranks posts against a query.
	Search driving.SearchService

	// Posts lists recent posts and their matched terms.
	Posts driving.PostService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Trends == nil {
		return ErrMissingTrendService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Posts == nil {
		return ErrMissingPostService
	}
	return nil
}

// Options holds the request parameters of each tab.
// Zero values fall back to the service defaults.
type Options struct {
	TrendDays    int
	TrendLimit   int
	CuisineLimit int
	SearchDays   int
	SearchLimit  int
	PostLimit    int
}
