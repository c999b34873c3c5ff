package mcp

import (
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks posts against a query.
	Search driving.SearchService

	// Trends ranks terms and cuisines.
	Trends driving.TrendService

	// Matching runs term matching. Optional; without it run_matching is not offered.
	Matching driving.MatchingService

	// Vocabulary lists tracked terms. Optional.
	Vocabulary driving.VocabularyService

	// Posts reads stored posts. Optional.
	Posts driving.PostService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Trends == nil {
		return ErrMissingTrendService
	}
	return nil
}
