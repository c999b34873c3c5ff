package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// defaultCuisineLimit is the number of cuisines listed by default.
const defaultCuisineLimit = 12

var (
	trendsDays  int
	trendsLimit int
	trendsJSON  bool

	cuisinesDays  int
	cuisinesLimit int
	cuisinesJSON  bool
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Rank the trending vocabulary terms",
	Long: `Ranks active terms by recency-weighted mentions over the window.
Each mention decays with post age and is boosted by the post's score and
comment count. The spike column compares the last 24 hours to the 24
hours before.`,
	Args: cobra.NoArgs,
	RunE: runTrends,
}

var cuisinesCmd = &cobra.Command{
	Use:   "cuisines",
	Short: "Rank the trending cuisines",
	Long: `Aggregates term mentions by cultural origin and ranks the cuisines
using the same recency and engagement weighting as 'trends'.`,
	Args: cobra.NoArgs,
	RunE: runCuisines,
}

func init() {
	defaults := domain.DefaultAppSettings().Trends

	trendsCmd.Flags().IntVarP(&trendsDays, "days", "d", defaults.Days, "lookback window in days")
	trendsCmd.Flags().IntVarP(&trendsLimit, "limit", "n", defaults.Limit, "maximum number of terms")
	trendsCmd.Flags().BoolVar(&trendsJSON, "json", false, "output results as JSON")

	cuisinesCmd.Flags().IntVarP(&cuisinesDays, "days", "d", defaults.Days, "lookback window in days")
	cuisinesCmd.Flags().IntVarP(&cuisinesLimit, "limit", "n", defaultCuisineLimit, "maximum number of cuisines")
	cuisinesCmd.Flags().BoolVar(&cuisinesJSON, "json", false, "output results as JSON")

	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(cuisinesCmd)
}

func trendOptions(cmd *cobra.Command, days, limit int, useConfigLimit bool) domain.TrendOptions {
	settings := currentSettings()
	if !cmd.Flags().Changed("days") {
		days = settings.Trends.Days
	}
	if useConfigLimit && !cmd.Flags().Changed("limit") {
		limit = settings.Trends.Limit
	}
	return domain.TrendOptions{Days: days, Limit: limit, Weights: settings.Scoring}
}

func runTrends(cmd *cobra.Command, _ []string) error {
	if trendService == nil {
		return errNotConfigured("trend")
	}

	opts := trendOptions(cmd, trendsDays, trendsLimit, true)
	trends, err := trendService.TrendingTerms(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("ranking terms failed: %w", err)
	}

	if trendsJSON {
		return printJSON(cmd, trends)
	}

	if len(trends) == 0 {
		cmd.Println("No term mentions in this window.")
		return nil
	}

	printHeader(cmd, fmt.Sprintf("Trending terms (last %d days)", opts.Days))
	cmd.Printf("%-4s %-28s %10s %8s %5s %5s %7s\n", "#", "Term", "Score", "Mentions", "24h", "Prev", "Spike")
	for i, t := range trends {
		cmd.Printf("%-4d %-28s %10.4f %8d %5d %5d %7.2f\n",
			i+1, truncate(t.Term, 28), t.TrendScore, t.Mentions, t.Recent24h, t.Prev24h, t.Spike)
	}
	return nil
}

func runCuisines(cmd *cobra.Command, _ []string) error {
	if trendService == nil {
		return errNotConfigured("trend")
	}

	opts := trendOptions(cmd, cuisinesDays, cuisinesLimit, false)
	trends, err := trendService.TrendingCuisines(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("ranking cuisines failed: %w", err)
	}

	if cuisinesJSON {
		return printJSON(cmd, trends)
	}

	if len(trends) == 0 {
		cmd.Println("No cuisine mentions in this window.")
		return nil
	}

	printHeader(cmd, fmt.Sprintf("Trending cuisines (last %d days)", opts.Days))
	cmd.Printf("%-4s %-20s %10s %8s %5s %7s %6s %5s\n", "#", "Cuisine", "Score", "Mentions", "24h", "Spike", "Terms", "Subs")
	for i, c := range trends {
		label := c.Label
		if label == "" {
			label = c.Origin.Label()
		}
		cmd.Printf("%-4d %-20s %10.4f %8d %5d %7.2f %6d %5d\n",
			i+1, truncate(label, 20), c.TrendScore, c.Mentions, c.Recent24h, c.Spike, c.UniqueTerms, c.SubredditSpread)
	}
	return nil
}
