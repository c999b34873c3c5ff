package domain

// TrendOptions configures a trend ranking.
type TrendOptions struct {
	// Days is the lookback window. Zero means the default (7).
	Days int

	// Limit is the maximum number of rows. Zero means the default (20).
	Limit int

	// Weights are the decay and engagement parameters.
	// A zero value means DefaultScoringWeights.
	Weights ScoringWeights
}

// TermTrend is one row of the term ranking.
type TermTrend struct {
	TermID     int64
	Term       string
	TrendScore float64
	Mentions   int
	Recent24h  int
	Prev24h    int
	Spike      float64
}

// CuisineTrend is one row of the cultural-origin ranking.
type CuisineTrend struct {
	Origin          CulturalOrigin
	Label           string
	TrendScore      float64
	Mentions        int
	Recent24h       int
	Prev24h         int
	Spike           float64
	UniqueTerms     int
	SubredditSpread int
}

// SpikeRatio is the additively smoothed ratio of the most recent 24h
// count to the 24h before it.
func SpikeRatio(recent, prev int) float64 {
	return float64(recent+1) / float64(prev+1)
}
