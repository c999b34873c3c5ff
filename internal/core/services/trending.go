package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Ensure TrendService implements the interface.
var _ driving.TrendService = (*TrendService)(nil)

// trendBucket accumulates the mentions of one grouping key.
type trendBucket struct {
	label    string
	score    float64
	mentions int
	recent   int
	prev     int
	terms    map[int64]struct{}
	sources  map[string]struct{}
}

// aggregate folds mentions into buckets keyed by keyFn.
// A mention created at or after now-24h counts as recent; one created in
// [now-48h, now-24h) counts toward the previous day.
func aggregate[K comparable](
	mentions []domain.Mention,
	now time.Time,
	w domain.ScoringWeights,
	keyFn func(m *domain.Mention) K,
) map[K]*trendBucket {
	recentCut := now.Add(-24 * time.Hour)
	prevCut := now.Add(-48 * time.Hour)

	buckets := make(map[K]*trendBucket)
	for i := range mentions {
		m := &mentions[i]
		key := keyFn(m)
		b, ok := buckets[key]
		if !ok {
			b = &trendBucket{
				label:   m.TermText,
				terms:   make(map[int64]struct{}),
				sources: make(map[string]struct{}),
			}
			buckets[key] = b
		}

		b.score += Contribution(ageDays(now, m.CreatedAt), m.Score, m.Comments, w)
		b.mentions++
		switch {
		case !m.CreatedAt.Before(recentCut):
			b.recent++
		case !m.CreatedAt.Before(prevCut):
			b.prev++
		}
		b.terms[m.TermID] = struct{}{}
		b.sources[m.Source] = struct{}{}
	}
	return buckets
}

// TrendService ranks terms and cultural origins by decayed popularity.
type TrendService struct {
	assocStore driven.AssociationStore
	defaults   domain.TrendSettings
	weights    domain.ScoringWeights
	now        func() time.Time
}

// NewTrendService creates a trend service.
// Options left at zero fall back to defaults and weights.
func NewTrendService(
	assocStore driven.AssociationStore,
	defaults domain.TrendSettings,
	weights domain.ScoringWeights,
) *TrendService {
	return &TrendService{
		assocStore: assocStore,
		defaults:   defaults,
		weights:    weights,
		now:        time.Now,
	}
}

// SetClock overrides the reference time used for ages and windows.
func (s *TrendService) SetClock(now func() time.Time) {
	s.now = now
}

// TrendingTerms ranks active terms over the last opts.Days days.
func (s *TrendService) TrendingTerms(ctx context.Context, opts domain.TrendOptions) ([]domain.TermTrend, error) {
	logger.Section("Trending Terms")

	opts, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	mentions, err := s.mentions(ctx, now, opts.Days)
	if err != nil {
		return nil, err
	}

	buckets := aggregate(mentions, now, opts.Weights, func(m *domain.Mention) int64 { return m.TermID })

	results := make([]domain.TermTrend, 0, len(buckets))
	for id, b := range buckets {
		results = append(results, domain.TermTrend{
			TermID:     id,
			Term:       b.label,
			TrendScore: b.score,
			Mentions:   b.mentions,
			Recent24h:  b.recent,
			Prev24h:    b.prev,
			Spike:      domain.SpikeRatio(b.recent, b.prev),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TrendScore != results[j].TrendScore {
			return results[i].TrendScore > results[j].TrendScore
		}
		return results[i].Term < results[j].Term
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	logger.Debug("Ranked %d terms", len(results))

	return results, nil
}

// TrendingCuisines ranks cultural origins over the last opts.Days days.
func (s *TrendService) TrendingCuisines(ctx context.Context, opts domain.TrendOptions) ([]domain.CuisineTrend, error) {
	logger.Section("Trending Cuisines")

	opts, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	mentions, err := s.mentions(ctx, now, opts.Days)
	if err != nil {
		return nil, err
	}

	buckets := aggregate(mentions, now, opts.Weights, func(m *domain.Mention) domain.CulturalOrigin {
		return domain.ParseCulturalOrigin(m.Origin.String())
	})

	results := make([]domain.CuisineTrend, 0, len(buckets))
	for origin, b := range buckets {
		results = append(results, domain.CuisineTrend{
			Origin:          origin,
			Label:           origin.Label(),
			TrendScore:      b.score,
			Mentions:        b.mentions,
			Recent24h:       b.recent,
			Prev24h:         b.prev,
			Spike:           domain.SpikeRatio(b.recent, b.prev),
			UniqueTerms:     len(b.terms),
			SubredditSpread: len(b.sources),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TrendScore != results[j].TrendScore {
			return results[i].TrendScore > results[j].TrendScore
		}
		return results[i].Origin < results[j].Origin
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	logger.Debug("Ranked %d origins", len(results))

	return results, nil
}

func (s *TrendService) resolve(opts domain.TrendOptions) (domain.TrendOptions, error) {
	if opts.Days <= 0 {
		opts.Days = s.defaults.Days
	}
	if opts.Days <= 0 {
		opts.Days = 7
	}
	if opts.Limit <= 0 {
		opts.Limit = s.defaults.Limit
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Weights.IsZero() {
		opts.Weights = s.weights
	}
	if opts.Weights.IsZero() {
		opts.Weights = domain.DefaultScoringWeights()
	}
	if err := opts.Weights.Validate(); err != nil {
		return opts, err
	}
	logger.Debug("Days: %d, Limit: %d, Half-life: %.2f", opts.Days, opts.Limit, opts.Weights.HalfLifeDays)
	return opts, nil
}

func (s *TrendService) mentions(ctx context.Context, now time.Time, days int) ([]domain.Mention, error) {
	since := windowStart(now, days)
	mentions, err := s.assocStore.ListMentions(ctx, since, true)
	if err != nil {
		return nil, fmt.Errorf("list mentions: %w", err)
	}
	logger.Debug("Mentions in window: %d", len(mentions))
	return mentions, nil
}
