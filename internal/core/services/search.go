package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks documents by token overlap, engagement and recency.
type SearchService struct {
	docStore  driven.DocumentStore
	termStore driven.TermStore
	defaults  domain.SearchSettings
	now       func() time.Time
}

// NewSearchService creates a new search service.
func NewSearchService(
	docStore driven.DocumentStore,
	termStore driven.TermStore,
	defaults domain.SearchSettings,
) *SearchService {
	if defaults.Weights == (domain.SearchWeights{}) {
		defaults.Weights = domain.DefaultSearchWeights()
	}
	return &SearchService{
		docStore:  docStore,
		termStore: termStore,
		defaults:  defaults,
		now:       time.Now,
	}
}

// SetClock overrides the reference time used for ages and windows.
func (s *SearchService) SetClock(now func() time.Time) {
	s.now = now
}

// Search ranks documents created in the window against query.
// A query without tokens, or an unknown or inactive term filter,
// returns an empty list and no error.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	queryTokens := TokenSet(query)
	if len(queryTokens) == 0 {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	opts = s.resolve(opts)
	logger.Debug("Days: %d, Limit: %d, Half-life: %.2f", opts.Days, opts.Limit, opts.HalfLifeDays)

	now := s.now().UTC()
	window := domain.WindowQuery{Since: windowStart(now, opts.Days)}

	if termText := strings.TrimSpace(opts.Term); termText != "" {
		term, err := s.termStore.FindActiveByText(ctx, termText)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Term filter %q not found or inactive", termText)
			return []domain.SearchResult{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("find term %q: %w", termText, err)
		}
		window.TermID = term.ID
		logger.Debug("Term filter: %q (id %d)", term.Text, term.ID)
	}

	docs, err := s.docStore.ListInWindow(ctx, window)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("list documents in window: %w", err)
	}
	logger.Debug("Candidates: %d documents", len(docs))

	w := s.defaults.Weights
	results := make([]domain.SearchResult, 0)
	for i := range docs {
		doc := &docs[i]
		titleHits := overlap(queryTokens, doc.Title)
		bodyHits := overlap(queryTokens, doc.Body)
		if titleHits == 0 && bodyHits == 0 {
			continue
		}

		textScore := w.TitleWeight*float64(titleHits) + w.BodyWeight*float64(bodyHits)
		engagement := math.Log1p(nonNegative(doc.Score)) + w.CommentWeight*math.Log1p(nonNegative(doc.Comments))
		rank := Decay(ageDays(now, doc.CreatedAt), opts.HalfLifeDays) * (textScore + w.EngagementWeight*engagement)

		results = append(results, domain.SearchResult{
			Document:  *doc,
			RankScore: rank,
			TitleHits: titleHits,
			BodyHits:  bodyHits,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := &results[i], &results[j]
		if a.RankScore != b.RankScore {
			return a.RankScore > b.RankScore
		}
		if !a.Document.CreatedAt.Equal(b.Document.CreatedAt) {
			return a.Document.CreatedAt.After(b.Document.CreatedAt)
		}
		return a.Document.ExternalID < b.Document.ExternalID
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	logger.Info("Final results: %d", len(results))

	return results, nil
}

func (s *SearchService) resolve(opts domain.SearchOptions) domain.SearchOptions {
	if opts.Days <= 0 {
		opts.Days = s.defaults.Days
	}
	if opts.Days <= 0 {
		opts.Days = 30
	}
	if opts.Limit <= 0 {
		opts.Limit = s.defaults.Limit
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.HalfLifeDays <= 0 {
		opts.HalfLifeDays = s.defaults.HalfLifeDays
	}
	if opts.HalfLifeDays <= 0 {
		opts.HalfLifeDays = 7
	}
	return opts
}

// overlap counts the distinct query tokens present in text.
func overlap(query map[string]struct{}, text string) int {
	hits := 0
	for tok := range TokenSet(text) {
		if _, ok := query[tok]; ok {
			hits++
		}
	}
	return hits
}
