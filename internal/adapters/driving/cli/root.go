// Package cli implements the foodtrend command line using cobra.
// It is a driving adapter: commands parse flags, call driving ports and
// format the results.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// version is overridden at build time with -ldflags.
var version = "dev"

// Services bundles the ports every command may use.
type Services struct {
	Matching        driving.MatchingService
	Trends          driving.TrendService
	Search          driving.SearchService
	Vocabulary      driving.VocabularyService
	Posts           driving.PostService
	Settings        driving.SettingsService
	Scheduler       driving.Scheduler
	SchedulerConfig domain.SchedulerConfig

	// NewIngest builds an ingest service over the given sources.
	NewIngest func(sources ...driven.PostSource) driving.IngestService

	// NewWatcher creates a vocabulary file watcher.
	NewWatcher func() (driven.VocabularyWatcher, error)
}

// RuntimeOptions are the global flags a Loader needs to open storage.
type RuntimeOptions struct {
	// DataDir overrides the directory holding config.toml and the database.
	DataDir string

	// Memory keeps everything in process memory.
	Memory bool
}

// Loader builds the services before a command runs. The returned function
// releases them.
type Loader func(opts RuntimeOptions) (*Services, func() error, error)

var (
	matchingService   driving.MatchingService
	trendService      driving.TrendService
	searchService     driving.SearchService
	vocabularyService driving.VocabularyService
	postService       driving.PostService
	settingsService   driving.SettingsService
	scheduler         driving.Scheduler
	schedulerConfig   domain.SchedulerConfig
	newIngest         func(sources ...driven.PostSource) driving.IngestService
	newWatcher        func() (driven.VocabularyWatcher, error)

	loader  Loader
	release func() error
)

var (
	verbose  bool
	logLevel string
	dataDir  string
	memory   bool
)

var rootCmd = &cobra.Command{
	Use:   "foodtrend",
	Short: "Track trending food terms in social posts",
	Long: `foodtrend ingests food posts, matches them against a curated vocabulary
of dishes, ingredients and cuisines, and ranks what is trending.

Run 'foodtrend terms seed' to load the built-in vocabulary, then
'foodtrend ingest reddit --match' to fetch posts and attach terms.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&dataDir, "data-dir", "", "data directory (default ~/.foodtrend)")
	flags.BoolVar(&memory, "memory", false, "use an in-memory store instead of SQLite")
}

// SetServices injects the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	matchingService = s.Matching
	trendService = s.Trends
	searchService = s.Search
	vocabularyService = s.Vocabulary
	postService = s.Posts
	settingsService = s.Settings
	scheduler = s.Scheduler
	schedulerConfig = s.SchedulerConfig
	newIngest = s.NewIngest
	newWatcher = s.NewWatcher
}

// SetLoader registers the function that builds services from the global
// flags. Without one, commands use whatever SetServices provided.
func SetLoader(l Loader) {
	loader = l
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func preRun(_ *cobra.Command, _ []string) error {
	if logLevel != "" {
		lvl, err := logger.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		logger.SetLevel(lvl)
	}
	if verbose {
		logger.SetVerbose(true)
	}

	if loader == nil || release != nil {
		return nil
	}
	s, cleanup, err := loader(RuntimeOptions{DataDir: dataDir, Memory: memory})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(s)
	release = cleanup
	return nil
}

func closeServices() {
	if release == nil {
		return
	}
	if err := release(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	release = nil
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeServices()

	return rootCmd.ExecuteContext(ctx)
}

// currentSettings returns the configured settings, or defaults when no
// settings service is wired.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	return settingsService.Get()
}

// errNotConfigured reports a command run without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
