package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

var (
	importFile     string
	importInactive bool
	importDryRun   bool

	seedDeactivateStops bool
	seedWipe            bool

	listInactive bool
	listOrigin   string
	listJSON     bool

	candDays       int
	candLimitPosts int
	candTop        int
	candMinCount   int
	candMaxNgram   int
	candEngagement bool

	watchFile  string
	watchMatch bool
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Manage the tracked vocabulary",
	Long: `Manage the vocabulary of dishes, ingredients and cuisines that posts
are matched against.`,
}

var termsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import terms from a text file",
	Long: `Imports one term per line. Blank lines and lines starting with # are
skipped. Known terms are reactivated; new terms are created.`,
	Args: cobra.NoArgs,
	RunE: runTermsImport,
}

var termsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in vocabulary",
	Args:  cobra.NoArgs,
	RunE:  runTermsSeed,
}

var termsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vocabulary terms",
	Args:  cobra.NoArgs,
	RunE:  runTermsList,
}

var termsActivateCmd = &cobra.Command{
	Use:   "activate [term]",
	Short: "Include a term in matching and trends",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTermActive(cmd, args[0], true)
	},
}

var termsDeactivateCmd = &cobra.Command{
	Use:   "deactivate [term]",
	Short: "Exclude a term from matching and trends",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTermActive(cmd, args[0], false)
	},
}

var termsCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Suggest new terms from recent posts",
	Long: `Counts frequent words and phrases in recent post titles that are not
yet in the vocabulary. Review the output and import the ones worth tracking.`,
	Args: cobra.NoArgs,
	RunE: runTermsCandidates,
}

var termsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-import a vocabulary file whenever it changes",
	Args:  cobra.NoArgs,
	RunE:  runTermsWatch,
}

func init() {
	termsImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "file with one term per line")
	termsImportCmd.Flags().BoolVar(&importInactive, "inactive", false, "create new terms as inactive")
	termsImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "report changes without writing")
	_ = termsImportCmd.MarkFlagRequired("file")

	termsSeedCmd.Flags().BoolVar(&seedDeactivateStops, "deactivate-stops", false, "deactivate stored terms that are stop words")
	termsSeedCmd.Flags().BoolVar(&seedWipe, "wipe", false, "delete every term and tag before seeding")

	termsListCmd.Flags().BoolVar(&listInactive, "inactive", false, "include inactive terms")
	termsListCmd.Flags().StringVar(&listOrigin, "origin", "", "only terms of this cultural origin")
	termsListCmd.Flags().BoolVar(&listJSON, "json", false, "output terms as JSON")

	defaults := domain.DefaultCandidateOptions()
	termsCandidatesCmd.Flags().IntVarP(&candDays, "days", "d", defaults.Days, "lookback window in days")
	termsCandidatesCmd.Flags().IntVar(&candLimitPosts, "limit-posts", defaults.LimitPosts, "maximum posts scanned")
	termsCandidatesCmd.Flags().IntVar(&candTop, "top", defaults.Top, "number of candidates to show")
	termsCandidatesCmd.Flags().IntVar(&candMinCount, "min-count", defaults.MinCount, "minimum occurrences")
	termsCandidatesCmd.Flags().IntVar(&candMaxNgram, "max-ngram", defaults.MaxNgram, "longest phrase length (1-3)")
	termsCandidatesCmd.Flags().BoolVar(&candEngagement, "engagement", false, "weight counts by post engagement")

	termsWatchCmd.Flags().StringVarP(&watchFile, "file", "f", "", "vocabulary file to watch")
	termsWatchCmd.Flags().BoolVar(&watchMatch, "match", false, "run matching after each import")
	_ = termsWatchCmd.MarkFlagRequired("file")

	termsCmd.AddCommand(termsImportCmd)
	termsCmd.AddCommand(termsSeedCmd)
	termsCmd.AddCommand(termsListCmd)
	termsCmd.AddCommand(termsActivateCmd)
	termsCmd.AddCommand(termsDeactivateCmd)
	termsCmd.AddCommand(termsCandidatesCmd)
	termsCmd.AddCommand(termsWatchCmd)
	rootCmd.AddCommand(termsCmd)
}

func importFrom(cmd *cobra.Command, path string, opts driving.ImportOptions) (domain.ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("opening vocabulary: %w", err)
	}
	defer f.Close()

	report, err := vocabularyService.Import(cmd.Context(), f, opts)
	if err != nil {
		return report, fmt.Errorf("import failed: %w", err)
	}
	return report, nil
}

func printImportReport(cmd *cobra.Command, r domain.ImportReport) {
	if r.DryRun {
		cmd.Println("Dry run, nothing was written.")
	}
	cmd.Printf("Created: %d  Reactivated: %d  Unchanged: %d\n", r.Created, r.Reactivated, r.Unchanged)
	cmd.Printf("Skipped: %d blank, %d comments\n", r.SkippedBlank, r.SkippedComment)
}

func runTermsImport(cmd *cobra.Command, _ []string) error {
	if vocabularyService == nil {
		return errNotConfigured("vocabulary")
	}

	report, err := importFrom(cmd, importFile, driving.ImportOptions{
		Inactive: importInactive,
		DryRun:   importDryRun,
	})
	if err != nil {
		return err
	}
	printImportReport(cmd, report)
	return nil
}

func runTermsSeed(cmd *cobra.Command, _ []string) error {
	if vocabularyService == nil {
		return errNotConfigured("vocabulary")
	}

	report, err := vocabularyService.Seed(cmd.Context(), driving.SeedOptions{
		DeactivateStops: seedDeactivateStops,
		Wipe:            seedWipe,
	})
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	if report.Wiped > 0 {
		cmd.Printf("Wiped %d terms.\n", report.Wiped)
	}
	cmd.Printf("Created: %d  Reactivated: %d\n", report.Created, report.Reactivated)
	if seedDeactivateStops {
		cmd.Printf("Stop terms deactivated: %d\n", report.StopDeactivated)
	}
	return nil
}

func runTermsList(cmd *cobra.Command, _ []string) error {
	if vocabularyService == nil {
		return errNotConfigured("vocabulary")
	}

	filter := domain.TermFilter{IncludeInactive: listInactive}
	if listOrigin != "" {
		origin := domain.CulturalOrigin(listOrigin)
		if !origin.IsValid() {
			return fmt.Errorf("%w: unknown origin %q", domain.ErrInvalidInput, listOrigin)
		}
		filter.Origin = origin
	}

	terms, err := vocabularyService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("listing terms failed: %w", err)
	}

	if listJSON {
		return printJSON(cmd, terms)
	}

	if len(terms) == 0 {
		cmd.Println("No terms. Run 'foodtrend terms seed' to load the built-in vocabulary.")
		return nil
	}

	printHeader(cmd, fmt.Sprintf("%d terms", len(terms)))
	for _, t := range terms {
		state := "active"
		if !t.Active {
			state = "inactive"
		}
		cmd.Printf("  %-32s %-18s %s\n", t.Text, t.Origin.Label(), state)
	}
	return nil
}

func setTermActive(cmd *cobra.Command, text string, active bool) error {
	if vocabularyService == nil {
		return errNotConfigured("vocabulary")
	}

	term, err := vocabularyService.SetActive(cmd.Context(), text, active)
	if err != nil {
		return fmt.Errorf("updating term failed: %w", err)
	}

	if active {
		cmd.Printf("Activated %q.\n", term.Text)
	} else {
		cmd.Printf("Deactivated %q.\n", term.Text)
	}
	return nil
}

func runTermsCandidates(cmd *cobra.Command, _ []string) error {
	if vocabularyService == nil {
		return errNotConfigured("vocabulary")
	}

	report, err := vocabularyService.Candidates(cmd.Context(), domain.CandidateOptions{
		Days:               candDays,
		LimitPosts:         candLimitPosts,
		Top:                candTop,
		MinCount:           candMinCount,
		MaxNgram:           candMaxNgram,
		WeightByEngagement: candEngagement,
	})
	if err != nil {
		return fmt.Errorf("extracting candidates failed: %w", err)
	}

	cmd.Printf("Scanned %d posts.\n", report.Scanned)
	if len(report.Candidates) == 0 {
		cmd.Println("No new candidates.")
		return nil
	}
	for _, c := range report.Candidates {
		cmd.Printf("  %6d  %s\n", c.Count, c.Text)
	}
	return nil
}

func runTermsWatch(cmd *cobra.Command, _ []string) error {
	if vocabularyService == nil {
		return errNotConfigured("vocabulary")
	}
	if newWatcher == nil {
		return errNotConfigured("watcher")
	}

	ctx := cmd.Context()
	var mu sync.Mutex
	reimport := func() {
		mu.Lock()
		defer mu.Unlock()

		report, err := importFrom(cmd, watchFile, driving.ImportOptions{})
		if err != nil {
			logger.Error("%v", err)
			return
		}
		cmd.Printf("Imported %s: %d created, %d reactivated.\n", watchFile, report.Created, report.Reactivated)

		if watchMatch && matchingService != nil {
			mr, err := matchingService.Run(ctx, domain.MatchOptions{Limit: currentSettings().Matching.BatchLimit})
			if err != nil {
				logger.Error("matching failed: %v", err)
				return
			}
			cmd.Printf("Matched %d posts, %d new tags.\n", mr.DocumentsProcessed, mr.Created)
		}
	}

	reimport()

	w, err := newWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Watch(watchFile, reimport); err != nil {
		_ = w.Stop()
		return fmt.Errorf("watching %s: %w", watchFile, err)
	}

	cmd.Printf("Watching %s. Press Ctrl+C to stop.\n", watchFile)
	<-ctx.Done()

	if err := w.Stop(); err != nil {
		return fmt.Errorf("stopping watcher: %w", err)
	}
	return nil
}
