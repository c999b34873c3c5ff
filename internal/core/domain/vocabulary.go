package domain

// ImportReport summarises a vocabulary import.
type ImportReport struct {
	Created        int
	Reactivated    int
	Unchanged      int
	SkippedBlank   int
	SkippedComment int
	DryRun         bool
}

// SeedReport summarises seeding the built-in vocabulary.
type SeedReport struct {
	Created         int
	Reactivated     int
	StopDeactivated int
	Wiped           int
}

// CandidateOptions configures candidate term extraction.
type CandidateOptions struct {
	// Days is the lookback window.
	Days int

	// LimitPosts caps how many recent posts are scanned.
	LimitPosts int

	// Top is how many candidates to return.
	Top int

	// MinCount drops candidates seen fewer times.
	MinCount int

	// MaxNgram is the longest n-gram considered (1-3).
	MaxNgram int

	// WeightByEngagement scales counts by post engagement.
	WeightByEngagement bool
}

// DefaultCandidateOptions returns the defaults used by the CLI.
func DefaultCandidateOptions() CandidateOptions {
	return CandidateOptions{
		Days:       14,
		LimitPosts: 800,
		Top:        60,
		MinCount:   3,
		MaxNgram:   2,
	}
}

// Candidate is a frequent n-gram proposed for the vocabulary.
type Candidate struct {
	Text  string
	Count int
}

// CandidateReport is the result of a candidate extraction.
type CandidateReport struct {
	Scanned    int
	Candidates []Candidate
}
