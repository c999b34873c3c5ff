package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockTrendService implements driving.TrendService for testing.
type mockTrendService struct {
	terms    []domain.TermTrend
	cuisines []domain.CuisineTrend
	err      error
	lastOpts domain.TrendOptions
}

func (m *mockTrendService) TrendingTerms(_ context.Context, opts domain.TrendOptions) ([]domain.TermTrend, error) {
	m.lastOpts = opts
	return m.terms, m.err
}

func (m *mockTrendService) TrendingCuisines(_ context.Context, opts domain.TrendOptions) ([]domain.CuisineTrend, error) {
	m.lastOpts = opts
	return m.cuisines, m.err
}

// mockMatchingService implements driving.MatchingService for testing.
type mockMatchingService struct {
	report   domain.MatchReport
	err      error
	lastOpts domain.MatchOptions
}

func (m *mockMatchingService) Run(_ context.Context, opts domain.MatchOptions) (domain.MatchReport, error) {
	m.lastOpts = opts
	return m.report, m.err
}

// mockVocabularyService implements driving.VocabularyService for testing.
type mockVocabularyService struct {
	terms []domain.Term
	err   error
}

func (m *mockVocabularyService) Import(_ context.Context, _ io.Reader, _ driving.ImportOptions) (domain.ImportReport, error) {
	return domain.ImportReport{}, nil
}

func (m *mockVocabularyService) Seed(_ context.Context, _ driving.SeedOptions) (domain.SeedReport, error) {
	return domain.SeedReport{}, nil
}

func (m *mockVocabularyService) List(_ context.Context, _ domain.TermFilter) ([]domain.Term, error) {
	return m.terms, m.err
}

func (m *mockVocabularyService) SetActive(_ context.Context, _ string, _ bool) (*domain.Term, error) {
	return nil, nil
}

func (m *mockVocabularyService) Candidates(_ context.Context, _ domain.CandidateOptions) (domain.CandidateReport, error) {
	return domain.CandidateReport{}, nil
}

// mockPostService implements driving.PostService for testing.
type mockPostService struct {
	docs    []domain.Document
	tags    map[int64][]string
	err     error
	lastTag int64
}

func (m *mockPostService) Recent(_ context.Context, _ int) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockPostService) Tags(_ context.Context, documentID int64) ([]string, error) {
	m.lastTag = documentID
	if m.err != nil {
		return nil, m.err
	}
	return m.tags[documentID], nil
}

func basePorts() *Ports {
	return &Ports{
		Search: &mockSearchService{},
		Trends: &mockTrendService{},
	}
}
