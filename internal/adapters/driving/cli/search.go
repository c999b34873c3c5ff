package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

var (
	searchDays  int
	searchLimit int
	searchTerm  string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored posts",
	Long: `Ranks stored posts against a keyword query. Title matches count more
than body matches, and newer, more engaged posts rank higher.

Use --term to restrict the search to posts tagged with a vocabulary term.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	defaults := domain.DefaultAppSettings().Search

	searchCmd.Flags().IntVarP(&searchDays, "days", "d", defaults.Days, "only search posts from the last N days")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", defaults.Limit, "maximum number of results")
	searchCmd.Flags().StringVar(&searchTerm, "term", "", "only posts tagged with this term")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return domain.ErrEmptyQuery
	}

	if searchService == nil {
		return errNotConfigured("search")
	}

	settings := currentSettings().Search
	opts := domain.SearchOptions{
		Days:         searchDays,
		Limit:        searchLimit,
		HalfLifeDays: settings.HalfLifeDays,
		Term:         searchTerm,
	}
	if !cmd.Flags().Changed("days") {
		opts.Days = settings.Days
	}
	if !cmd.Flags().Changed("limit") {
		opts.Limit = settings.Limit
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	printHeader(cmd, "Results:")
	cmd.Println()
	for i := range results {
		doc := results[i].Document
		title := doc.Title
		if title == "" {
			title = "(untitled)"
		}

		cmd.Printf("  [%d] %s (%.4f)\n", i+1, truncate(title, 72), results[i].RankScore)
		cmd.Printf("      r/%s · %s · %d points · %d comments\n",
			doc.Source, doc.CreatedAt.UTC().Format("2006-01-02"), doc.Score, doc.Comments)
		if body := truncate(doc.Body, 120); body != "" {
			cmd.Printf("      %s\n", body)
		}
		cmd.Println()
	}
	return nil
}
