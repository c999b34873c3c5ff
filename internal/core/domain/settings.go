package domain

import "fmt"

// ScoringWeights holds the decay and engagement parameters shared
// by the trend rankers.
type ScoringWeights struct {
	// HalfLifeDays is the age at which a mention counts half.
	HalfLifeDays float64

	// ScoreWeight scales ln(1+score).
	ScoreWeight float64

	// CommentWeight scales ln(1+comments).
	CommentWeight float64
}

// DefaultScoringWeights returns the trend defaults.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		HalfLifeDays:  2.5,
		ScoreWeight:   0.25,
		CommentWeight: 0.15,
	}
}

// IsZero reports whether no field is set.
func (w ScoringWeights) IsZero() bool {
	return w == ScoringWeights{}
}

// Validate checks the weights are usable.
func (w ScoringWeights) Validate() error {
	if w.HalfLifeDays <= 0 {
		return fmt.Errorf("%w: half-life must be positive, got %v", ErrInvalidInput, w.HalfLifeDays)
	}
	if w.ScoreWeight < 0 || w.CommentWeight < 0 {
		return fmt.Errorf("%w: engagement weights must not be negative", ErrInvalidInput)
	}
	return nil
}

// SearchWeights holds the relevance ranker parameters.
type SearchWeights struct {
	// TitleWeight scales distinct query tokens found in the title.
	TitleWeight float64

	// BodyWeight scales distinct query tokens found in the body.
	BodyWeight float64

	// EngagementWeight scales the engagement term.
	EngagementWeight float64

	// CommentWeight scales ln(1+comments) inside the engagement term.
	CommentWeight float64
}

// DefaultSearchWeights returns the ranker defaults.
func DefaultSearchWeights() SearchWeights {
	return SearchWeights{
		TitleWeight:      2.0,
		BodyWeight:       1.0,
		EngagementWeight: 0.2,
		CommentWeight:    0.5,
	}
}

// MatchingSettings configures how the vocabulary is indexed.
type MatchingSettings struct {
	// MinTermLength rejects shorter terms.
	MinTermLength int

	// StopTerms are generic words never matched even if active.
	StopTerms []string

	// BatchLimit is the default candidate cap for a run.
	BatchLimit int
}

// DefaultStopTerms returns the generic words excluded from matching.
func DefaultStopTerms() []string {
	return []string{
		"food", "cook", "cooking", "recipe", "recipes",
		"help", "need", "best", "easy", "good", "question",
		"dinner", "lunch", "breakfast", "meal", "meals",
		"cutting",
	}
}

// DefaultMatchingSettings returns matching defaults.
func DefaultMatchingSettings() MatchingSettings {
	return MatchingSettings{
		MinTermLength: 3,
		StopTerms:     DefaultStopTerms(),
		BatchLimit:    500,
	}
}

// TrendSettings holds request defaults for the trend rankers.
type TrendSettings struct {
	Days  int
	Limit int
}

// SearchSettings holds request defaults for search.
type SearchSettings struct {
	Days         int
	Limit        int
	HalfLifeDays float64
	Weights      SearchWeights
}

// IngestSettings configures post sources.
type IngestSettings struct {
	// Subreddits are fetched by the reddit source.
	Subreddits []string

	// Limit is the number of posts requested per subreddit.
	Limit int

	// RequestsPerSecond throttles the reddit source.
	RequestsPerSecond float64

	// UserAgent is sent with every request.
	UserAgent string

	// CSVSource is the source group assigned to CSV rows.
	CSVSource string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Matching MatchingSettings
	Scoring  ScoringWeights
	Trends   TrendSettings
	Search   SearchSettings
	Ingest   IngestSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Matching: DefaultMatchingSettings(),
		Scoring:  DefaultScoringWeights(),
		Trends: TrendSettings{
			Days:  7,
			Limit: 20,
		},
		Search: SearchSettings{
			Days:         30,
			Limit:        20,
			HalfLifeDays: 7,
			Weights:      DefaultSearchWeights(),
		},
		Ingest: IngestSettings{
			Subreddits:        []string{"food", "Cooking", "recipes"},
			Limit:             50,
			RequestsPerSecond: 0.5,
			UserAgent:         "foodtrend/0.1 (trend tracker)",
			CSVSource:         "food",
		},
	}
}
