package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for foodtrend resources.
	uriScheme = "foodtrend://"

	// recentPostsLimit is how many posts the recent-posts resource returns.
	recentPostsLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "terms",
		Name:        "terms",
		Description: "Active tracked vocabulary with cultural origins",
		MIMEType:    "application/json",
	}, s.handleTermsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "posts/recent",
		Name:        "recent-posts",
		Description: "Newest ingested posts",
		MIMEType:    "application/json",
	}, s.handleRecentPostsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "posts/{postId}/terms",
		Name:        "post-terms",
		Description: "Tracked terms matched in a specific post",
		MIMEType:    "application/json",
	}, s.handlePostTermsResource)
}

// handleTermsResource returns the active vocabulary.
func (s *Server) handleTermsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Vocabulary == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	terms, err := s.ports.Vocabulary.List(ctx, domain.TermFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}

	type termInfo struct {
		ID     int64  `json:"id"`
		Text   string `json:"text"`
		Origin string `json:"origin"`
	}

	infos := make([]termInfo, len(terms))
	for i, t := range terms {
		infos[i] = termInfo{
			ID:     t.ID,
			Text:   t.Text,
			Origin: t.Origin.OrDefault().String(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling terms: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleRecentPostsResource returns the newest posts.
func (s *Server) handleRecentPostsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Posts == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	docs, err := s.ports.Posts.Recent(ctx, recentPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	type postInfo struct {
		ID        int64  `json:"id"`
		RedditID  string `json:"reddit_id"`
		Subreddit string `json:"subreddit"`
		Title     string `json:"title"`
		CreatedAt string `json:"created_utc"`
		Score     int    `json:"score"`
		Comments  int    `json:"num_comments"`
		URI       string `json:"uri"`
	}

	infos := make([]postInfo, len(docs))
	for i := range docs {
		infos[i] = postInfo{
			ID:        docs[i].ID,
			RedditID:  docs[i].ExternalID,
			Subreddit: docs[i].Source,
			Title:     docs[i].Title,
			CreatedAt: docs[i].CreatedAt.UTC().Format(time.RFC3339),
			Score:     docs[i].Score,
			Comments:  docs[i].Comments,
			URI:       postTermsURI(docs[i].ID),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling posts: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handlePostTermsResource returns the term texts matched in one post.
func (s *Server) handlePostTermsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Posts == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	postID, ok := extractPostID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tags, err := s.ports.Posts.Tags(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("getting post terms: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}

	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshalling post terms: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

func postTermsURI(id int64) string {
	return uriScheme + "posts/" + strconv.FormatInt(id, 10) + "/terms"
}

// extractPostID extracts the post ID from a URI like foodtrend://posts/{postId}/terms.
func extractPostID(uri string) (int64, bool) {
	const prefix = uriScheme + "posts/"
	const suffix = "/terms"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0, false
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
