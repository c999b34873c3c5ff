package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Days is the lookback window. Zero means the default (30).
	Days int

	// Limit is the maximum number of results. Zero means the default (20).
	Limit int

	// HalfLifeDays is the recency half-life. Zero means the default (7).
	HalfLifeDays float64

	// Term restricts results to documents associated with this exact
	// active term (case-insensitive). Empty means no filter.
	Term string
}

// SearchResult represents a single ranked document.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// RankScore is the final relevance score.
	RankScore float64

	// TitleHits is the number of distinct query tokens found in the title.
	TitleHits int

	// BodyHits is the number of distinct query tokens found in the body.
	BodyHits int
}
