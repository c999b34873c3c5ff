package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

var (
	matchLimit int
	matchForce bool
	matchIDs   string
	matchJSON  bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Attach vocabulary terms to stored posts",
	Long: `Scans stored posts for active vocabulary terms and records a tag for
every term found. Posts already matched are skipped unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 0, "maximum posts to process (default from config, 0 for no cap)")
	matchCmd.Flags().BoolVar(&matchForce, "force", false, "re-match posts that were already processed")
	matchCmd.Flags().StringVar(&matchIDs, "ids", "", "comma separated post ids to restrict the run to")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if matchingService == nil {
		return errNotConfigured("matching")
	}

	ids, err := parseIDs(matchIDs)
	if err != nil {
		return err
	}

	limit := matchLimit
	if !cmd.Flags().Changed("limit") {
		limit = currentSettings().Matching.BatchLimit
	}

	report, err := matchingService.Run(cmd.Context(), domain.MatchOptions{
		DocumentIDs: ids,
		Limit:       limit,
		Force:       matchForce,
	})
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if matchJSON {
		return printJSON(cmd, report)
	}
	printMatchReport(cmd, report)
	return nil
}

func printMatchReport(cmd *cobra.Command, r domain.MatchReport) {
	cmd.Printf("Matched %d posts against %d active terms.\n", r.DocumentsProcessed, r.ActiveTerms)
	cmd.Printf("  New tags:     %d\n", r.Created)
	if r.EmptyDocuments > 0 {
		cmd.Printf("  Empty posts:  %d\n", r.EmptyDocuments)
	}
}

func parseIDs(s string) ([]int64, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid post id %q", domain.ErrInvalidInput, p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
