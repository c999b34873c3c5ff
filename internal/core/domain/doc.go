// Package domain defines the core business entities for foodtrend.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A social-media post with engagement counters
//   - Term: A tracked vocabulary entry with a cultural origin
//   - Association: A recorded (document, term) match
//   - Mention: An association joined with its term and document
//   - TermTrend / CuisineTrend: Ranked trend rows
//   - SearchResult: A relevance-ranked document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
