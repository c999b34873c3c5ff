package reddit

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.PostSource = (*Source)(nil)

// DefaultSubreddits are fetched when none are configured.
var DefaultSubreddits = []string{"food", "Cooking", "recipes"}

// Source fetches one subreddit. Each subreddit is its own source so a
// failing one is reported without stopping the rest.
type Source struct {
	client    *Client
	subreddit string
	limit     int
}

// NewSource creates a source for a single subreddit.
func NewSource(client *Client, subreddit string, limit int) *Source {
	return &Source{client: client, subreddit: subreddit, limit: limit}
}

// NewSources creates one source per subreddit, sharing the client and
// its rate limiter. Empty subreddits falls back to DefaultSubreddits.
func NewSources(client *Client, subreddits []string, limit int) []driven.PostSource {
	if len(subreddits) == 0 {
		subreddits = DefaultSubreddits
	}
	sources := make([]driven.PostSource, 0, len(subreddits))
	for _, sub := range subreddits {
		sources = append(sources, NewSource(client, sub, limit))
	}
	return sources
}

// Name returns "r/<subreddit>".
func (s *Source) Name() string {
	return "r/" + s.subreddit
}

// Fetch returns the newest posts of the subreddit.
func (s *Source) Fetch(ctx context.Context) ([]domain.Document, error) {
	return s.client.FetchNew(ctx, s.subreddit, s.limit)
}
