package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/connectors/csvfile"
	"github.com/custodia-labs/foodtrend/internal/connectors/reddit"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

var (
	ingestSubs    string
	ingestLimit   int
	ingestMatch   bool
	ingestBaseURL string

	csvFile   string
	csvSource string
	csvMatch  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch posts into the store",
}

var ingestRedditCmd = &cobra.Command{
	Use:   "reddit",
	Short: "Fetch the newest posts from subreddits",
	Long: `Fetches the newest posts from each subreddit through reddit's public
JSON listings. Requests are throttled and honour reddit's rate limit
headers. Known posts have their score and comment count refreshed.`,
	Args: cobra.NoArgs,
	RunE: runIngestReddit,
}

var ingestCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Import posts from a CSV export",
	Long: `Imports posts from a CSV file with the columns
id, title, body, timestamp, score and comms_num.
timestamp uses the layout "2006-01-02 15:04:05" in UTC.`,
	Args: cobra.NoArgs,
	RunE: runIngestCSV,
}

func init() {
	defaults := domain.DefaultAppSettings().Ingest

	ingestRedditCmd.Flags().StringVar(&ingestSubs, "subs", "", "comma separated subreddits (default from config)")
	ingestRedditCmd.Flags().IntVarP(&ingestLimit, "limit", "n", defaults.Limit, "posts per subreddit")
	ingestRedditCmd.Flags().BoolVar(&ingestMatch, "match", false, "run matching after ingesting")
	ingestRedditCmd.Flags().StringVar(&ingestBaseURL, "base-url", "", "override the reddit endpoint")
	_ = ingestRedditCmd.Flags().MarkHidden("base-url")

	ingestCSVCmd.Flags().StringVarP(&csvFile, "file", "f", "", "CSV file to import")
	ingestCSVCmd.Flags().StringVar(&csvSource, "source", "", "source group for the rows (default from config)")
	ingestCSVCmd.Flags().BoolVar(&csvMatch, "match", false, "run matching after importing")
	_ = ingestCSVCmd.MarkFlagRequired("file")

	ingestCmd.AddCommand(ingestRedditCmd)
	ingestCmd.AddCommand(ingestCSVCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestReddit(cmd *cobra.Command, _ []string) error {
	if newIngest == nil {
		return errNotConfigured("ingest")
	}

	settings := currentSettings().Ingest
	subs := splitList(ingestSubs)
	if len(subs) == 0 {
		subs = settings.Subreddits
	}
	limit := ingestLimit
	if !cmd.Flags().Changed("limit") {
		limit = settings.Limit
	}

	client := reddit.NewClient(reddit.Options{
		BaseURL:           ingestBaseURL,
		UserAgent:         settings.UserAgent,
		RequestsPerSecond: settings.RequestsPerSecond,
	})
	return runIngest(cmd, ingestMatch, reddit.NewSources(client, subs, limit)...)
}

func runIngestCSV(cmd *cobra.Command, _ []string) error {
	if newIngest == nil {
		return errNotConfigured("ingest")
	}

	group := csvSource
	if group == "" {
		group = currentSettings().Ingest.CSVSource
	}
	return runIngest(cmd, csvMatch, csvfile.New(csvFile, group))
}

func runIngest(cmd *cobra.Command, match bool, sources ...driven.PostSource) error {
	report, err := newIngest(sources...).Ingest(cmd.Context(), match)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Fetched %d posts: %d new, %d updated.\n", report.Fetched, report.Inserted, report.Updated)
	if len(report.Failed) > 0 {
		names := make([]string, 0, len(report.Failed))
		for name := range report.Failed {
			names = append(names, name)
		}
		sort.Strings(names)

		cmd.Printf("%d sources failed:\n", len(names))
		for _, name := range names {
			cmd.Printf("  %s: %s\n", name, report.Failed[name])
		}
	}
	if report.Matching != nil {
		printMatchReport(cmd, *report.Matching)
	}
	return nil
}
