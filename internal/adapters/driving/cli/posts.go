package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	postsLimit int
	postsTags  bool
	postsJSON  bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the newest stored posts",
	Args:  cobra.NoArgs,
	RunE:  runPosts,
}

func init() {
	postsCmd.Flags().IntVarP(&postsLimit, "limit", "n", 20, "maximum number of posts")
	postsCmd.Flags().BoolVar(&postsTags, "tags", false, "show the terms matched in each post")
	postsCmd.Flags().BoolVar(&postsJSON, "json", false, "output posts as JSON")
	rootCmd.AddCommand(postsCmd)
}

func runPosts(cmd *cobra.Command, _ []string) error {
	if postService == nil {
		return errNotConfigured("post")
	}

	posts, err := postService.Recent(cmd.Context(), postsLimit)
	if err != nil {
		return fmt.Errorf("listing posts failed: %w", err)
	}

	if postsJSON {
		return printJSON(cmd, posts)
	}

	if len(posts) == 0 {
		cmd.Println("No posts stored yet. Try 'foodtrend ingest reddit'.")
		return nil
	}

	for _, p := range posts {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("%6d  %s  %-12s %s\n", p.ID, p.CreatedAt.UTC().Format("2006-01-02 15:04"), p.Source, truncate(title, 60))

		if !postsTags {
			continue
		}
		tags, err := postService.Tags(cmd.Context(), p.ID)
		if err != nil {
			return fmt.Errorf("loading tags for post %d: %w", p.ID, err)
		}
		if len(tags) > 0 {
			cmd.Printf("        terms: %s\n", strings.Join(tags, ", "))
		}
	}
	return nil
}
