package services

import (
	"math"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// Decay returns the weight of something ageDays old under exponential
// decay with the given half-life: 1 at age 0, 0.5 at one half-life.
// Negative ages count as zero.
func Decay(ageDays, halfLifeDays float64) float64 {
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-math.Ln2 * ageDays / halfLifeDays)
}

// Contribution returns the trend weight of a single mention.
// Negative engagement counters are treated as zero.
func Contribution(ageDays float64, score, comments int, w domain.ScoringWeights) float64 {
	engagement := 1 + w.ScoreWeight*math.Log1p(nonNegative(score)) +
		w.CommentWeight*math.Log1p(nonNegative(comments))
	return Decay(ageDays, w.HalfLifeDays) * engagement
}

// maxWindowDays bounds a lookback so the start stays a valid calendar date.
const maxWindowDays = 1_000_000

// windowStart returns the instant days calendar days before now.
func windowStart(now time.Time, days int) time.Time {
	if days > maxWindowDays {
		days = maxWindowDays
	}
	return now.AddDate(0, 0, -days)
}

// ageDays returns the age of t at now in fractional days.
func ageDays(now, t time.Time) float64 {
	return now.Sub(t).Hours() / 24
}

func nonNegative(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}
