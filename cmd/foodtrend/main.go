// Command foodtrend tracks trending food terms in social posts.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/foodtrend/internal/adapters/driven/config/file"
	"github.com/custodia-labs/foodtrend/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foodtrend/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/foodtrend/internal/adapters/driven/watcher"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/cli"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/core/services"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// stores groups the driven ports a service graph is built from.
type stores struct {
	docs      driven.DocumentStore
	terms     driven.TermStore
	assocs    driven.AssociationStore
	scheduler driven.SchedulerStore
	close     func() error
}

func openStores(opts cli.RuntimeOptions) (*stores, error) {
	if opts.Memory {
		m := memory.NewStore()
		return &stores{
			docs:   m.Documents(),
			terms:  m.Terms(),
			assocs: m.Associations(),
			close:  func() error { return nil },
		}, nil
	}

	dir := ""
	if opts.DataDir != "" {
		dir = filepath.Join(opts.DataDir, "data")
	}
	db, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened database %s", db.Path())
	return &stores{
		docs:      db.DocumentStore(),
		terms:     db.TermStore(),
		assocs:    db.AssociationStore(),
		scheduler: db.SchedulerStore(),
		close:     db.Close,
	}, nil
}

func load(opts cli.RuntimeOptions) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Get()

	st, err := openStores(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	matchLimit := settings.Matching.BatchLimit
	matching := services.NewMatchingService(st.terms, st.docs, st.assocs, settings.Matching)
	newIngest := func(sources ...driven.PostSource) driving.IngestService {
		return services.NewIngestService(st.docs, matching, matchLimit, sources...)
	}

	s := &cli.Services{
		Matching:   matching,
		Trends:     services.NewTrendService(st.assocs, settings.Trends, settings.Scoring),
		Search:     services.NewSearchService(st.docs, st.terms, settings.Search),
		Vocabulary: services.NewVocabularyService(st.terms, st.docs, settings.Matching),
		Posts:      services.NewPostService(st.docs, st.terms, st.assocs),
		Settings:   settingsService,
		NewIngest:  newIngest,
		NewWatcher: func() (driven.VocabularyWatcher, error) {
			return watcher.New(watcher.DefaultDebounce)
		},
	}

	if st.scheduler != nil {
		s.SchedulerConfig = settingsService.Scheduler()
		s.Scheduler = services.NewScheduler(
			s.SchedulerConfig,
			st.scheduler,
			newIngest(redditSources(settings)...),
			matching,
			matchLimit,
		)
	}

	return s, st.close, nil
}

func main() {
	cli.SetVersion(version)
	cli.SetLoader(load)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
