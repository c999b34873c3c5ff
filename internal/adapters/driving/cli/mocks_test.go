package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	memstore "github.com/custodia-labs/foodtrend/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/core/services"
)

var testTime = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type mockMatchingService struct {
	calls []domain.MatchOptions
	err   error
}

func (m *mockMatchingService) Run(_ context.Context, opts domain.MatchOptions) (domain.MatchReport, error) {
	m.calls = append(m.calls, opts)
	return domain.MatchReport{Created: 4, DocumentsProcessed: 3, ActiveTerms: 12}, m.err
}

type mockTrendService struct {
	termOpts    domain.TrendOptions
	cuisineOpts domain.TrendOptions
	empty       bool
}

func (m *mockTrendService) TrendingTerms(_ context.Context, opts domain.TrendOptions) ([]domain.TermTrend, error) {
	m.termOpts = opts
	if m.empty {
		return nil, nil
	}
	return []domain.TermTrend{
		{TermID: 1, Term: "birria", TrendScore: 3.25, Mentions: 5, Recent24h: 3, Prev24h: 1, Spike: 2},
	}, nil
}

func (m *mockTrendService) TrendingCuisines(_ context.Context, opts domain.TrendOptions) ([]domain.CuisineTrend, error) {
	m.cuisineOpts = opts
	if m.empty {
		return nil, nil
	}
	return []domain.CuisineTrend{
		{Origin: domain.OriginKorean, TrendScore: 1.5, Mentions: 2, UniqueTerms: 2, SubredditSpread: 1},
	}, nil
}

type mockSearchService struct {
	query string
	opts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	if query == "nothing" {
		return nil, nil
	}
	return []domain.SearchResult{{
		Document: domain.Document{
			ID: 1, Source: "food", Title: "Birria tacos at home", Body: "Slow braised beef",
			CreatedAt: testTime, Score: 120, Comments: 14,
		},
		RankScore: 2.5,
		TitleHits: 1,
	}}, nil
}

type mockVocabularyService struct {
	imported   string
	importOpts []driving.ImportOptions
	seedOpts   driving.SeedOptions
	filter     domain.TermFilter
	activeText string
	active     bool
	candOpts   domain.CandidateOptions
}

func (m *mockVocabularyService) Import(_ context.Context, r io.Reader, opts driving.ImportOptions) (domain.ImportReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ImportReport{}, err
	}
	m.imported = string(data)
	m.importOpts = append(m.importOpts, opts)
	return domain.ImportReport{Created: 2, Reactivated: 1, SkippedComment: 1, DryRun: opts.DryRun}, nil
}

func (m *mockVocabularyService) Seed(_ context.Context, opts driving.SeedOptions) (domain.SeedReport, error) {
	m.seedOpts = opts
	return domain.SeedReport{Created: 120, StopDeactivated: 2}, nil
}

func (m *mockVocabularyService) List(_ context.Context, filter domain.TermFilter) ([]domain.Term, error) {
	m.filter = filter
	return []domain.Term{
		{ID: 1, Text: "kimchi", Active: true, Origin: domain.OriginKorean},
		{ID: 2, Text: "cutting", Active: false, Origin: domain.OriginOther},
	}, nil
}

func (m *mockVocabularyService) SetActive(_ context.Context, text string, active bool) (*domain.Term, error) {
	if text == "missing" {
		return nil, domain.ErrNotFound
	}
	m.activeText = text
	m.active = active
	return &domain.Term{Text: text, Active: active}, nil
}

func (m *mockVocabularyService) Candidates(_ context.Context, opts domain.CandidateOptions) (domain.CandidateReport, error) {
	m.candOpts = opts
	return domain.CandidateReport{
		Scanned:    40,
		Candidates: []domain.Candidate{{Text: "smash burger", Count: 7}},
	}, nil
}

type mockPostService struct {
	limit    int
	tagCalls int
}

func (m *mockPostService) Recent(_ context.Context, limit int) ([]domain.Document, error) {
	m.limit = limit
	return []domain.Document{
		{ID: 9, Source: "Cooking", Title: "Gochujang wings", CreatedAt: testTime},
	}, nil
}

func (m *mockPostService) Tags(_ context.Context, _ int64) ([]string, error) {
	m.tagCalls++
	return []string{"gochujang", "wings"}, nil
}

type mockIngestService struct {
	sources []driven.PostSource
	match   bool
	report  domain.IngestReport
}

func (m *mockIngestService) Ingest(_ context.Context, match bool) (domain.IngestReport, error) {
	m.match = match
	return m.report, nil
}

type mockWatcher struct {
	path     string
	onChange func()
	stopped  bool
}

func (m *mockWatcher) Watch(path string, onChange func()) error {
	m.path = path
	m.onChange = onChange
	return nil
}

func (m *mockWatcher) Stop() error {
	m.stopped = true
	return nil
}

type mockScheduler struct {
	started bool
	stopped bool
}

func (m *mockScheduler) Start(ctx context.Context) error {
	m.started = true
	<-ctx.Done()
	return nil
}

func (m *mockScheduler) Stop() error {
	m.stopped = true
	return nil
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	matching   *mockMatchingService
	trends     *mockTrendService
	search     *mockSearchService
	vocabulary *mockVocabularyService
	posts      *mockPostService
	ingest     *mockIngestService
	watcher    *mockWatcher
	scheduler  *mockScheduler
	settings   *services.SettingsService
}

// setupTestServices installs mock services and returns a cleanup function.
func setupTestServices() func() {
	_, cleanup := installTestServices()
	return cleanup
}

// installTestServices is setupTestServices with access to the mocks.
func installTestServices() (*testServices, func()) {
	resetCommands(rootCmd)

	ts := &testServices{
		matching:   &mockMatchingService{},
		trends:     &mockTrendService{},
		search:     &mockSearchService{},
		vocabulary: &mockVocabularyService{},
		posts:      &mockPostService{},
		ingest:     &mockIngestService{report: domain.IngestReport{Fetched: 10, Inserted: 7, Updated: 3}},
		watcher:    &mockWatcher{},
		scheduler:  &mockScheduler{},
		settings:   services.NewSettingsService(memstore.NewConfigStore()),
	}

	SetServices(&Services{
		Matching:        ts.matching,
		Trends:          ts.trends,
		Search:          ts.search,
		Vocabulary:      ts.vocabulary,
		Posts:           ts.posts,
		Settings:        ts.settings,
		Scheduler:       ts.scheduler,
		SchedulerConfig: domain.DefaultSchedulerConfig(),
		NewIngest: func(sources ...driven.PostSource) driving.IngestService {
			ts.ingest.sources = sources
			return ts.ingest
		},
		NewWatcher: func() (driven.VocabularyWatcher, error) {
			return ts.watcher, nil
		},
	})

	return ts, func() {
		SetServices(nil)
		resetCommands(rootCmd)
	}
}

// resetCommands restores every flag to its default and clears contexts
// left behind by earlier executions.
func resetCommands(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	cmd.SetContext(nil) //nolint:staticcheck
	cmd.SetArgs(nil)

	for _, sub := range cmd.Commands() {
		resetCommands(sub)
	}
}
