package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// ==================== search ====================

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text query matched against post titles and bodies"`
	Days  int    `json:"days,omitempty" jsonschema:"lookback window in days (default 30)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
	Term  string `json:"term,omitempty" jsonschema:"only return posts tagged with this exact tracked term"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	RedditID  string  `json:"reddit_id"`
	Title     string  `json:"title"`
	Subreddit string  `json:"subreddit"`
	CreatedAt string  `json:"created_utc"`
	Score     int     `json:"score"`
	Comments  int     `json:"num_comments"`
	RankScore float64 `json:"rank_score"`
	TitleHits int     `json:"title_hits"`
	BodyHits  int     `json:"body_hits"`
}

// ==================== trends ====================

// TrendInput is the input schema for the trend tools.
type TrendInput struct {
	Days  int `json:"days,omitempty" jsonschema:"lookback window in days (default 7)"`
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of rows to return"`
}

// TermTrendOutput is the output schema for trending_terms.
type TermTrendOutput struct {
	Results []TermTrendRow `json:"results"`
	Count   int            `json:"count"`
}

// TermTrendRow is one ranked term.
type TermTrendRow struct {
	TermID     int64   `json:"term_id"`
	Term       string  `json:"term"`
	TrendScore float64 `json:"trend_score"`
	Mentions   int     `json:"mentions"`
	Recent24h  int     `json:"recent_24h"`
	Prev24h    int     `json:"prev_24h"`
	Spike      float64 `json:"spike"`
}

// CuisineTrendOutput is the output schema for trending_cuisines.
type CuisineTrendOutput struct {
	Results []CuisineTrendRow `json:"results"`
	Count   int               `json:"count"`
}

// CuisineTrendRow is one ranked cultural origin.
type CuisineTrendRow struct {
	Origin          string  `json:"origin"`
	Label           string  `json:"label"`
	TrendScore      float64 `json:"trend_score"`
	Mentions        int     `json:"mentions"`
	Recent24h       int     `json:"recent_24h"`
	Prev24h         int     `json:"prev_24h"`
	Spike           float64 `json:"spike"`
	UniqueTerms     int     `json:"unique_terms"`
	SubredditSpread int     `json:"subreddit_spread"`
}

// ==================== matching ====================

// MatchInput is the input schema for the run_matching tool.
type MatchInput struct {
	Limit int  `json:"limit,omitempty" jsonschema:"maximum number of posts to process (0 = all)"`
	Force bool `json:"force,omitempty" jsonschema:"re-process posts that were already matched"`
}

// MatchOutput is the output schema for the run_matching tool.
type MatchOutput struct {
	Created            int    `json:"created"`
	DocumentsProcessed int    `json:"documents_processed"`
	EmptyDocuments     int    `json:"empty_documents"`
	ActiveTerms        int    `json:"active_terms"`
	Duration           string `json:"duration"`
}

// cuisineDefaultLimit matches the dashboard's cuisine panel.
const cuisineDefaultLimit = 12

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search food posts ranked by keyword overlap, engagement and recency",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "trending_terms",
		Description: "Rank tracked food terms by decay-weighted mentions",
	}, s.handleTrendingTerms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "trending_cuisines",
		Description: "Rank cuisines (cultural origins) by decay-weighted mentions",
	}, s.handleTrendingCuisines)

	if s.ports.Matching != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "run_matching",
			Description: "Tag unprocessed posts with the tracked vocabulary",
		}, s.handleRunMatching)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, SearchOutput{}, domain.ErrEmptyQuery
	}

	opts := domain.SearchOptions{
		Days:  input.Days,
		Limit: input.Limit,
		Term:  input.Term,
	}
	results, err := s.ports.Search.Search(ctx, query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		doc := results[i].Document
		output.Results[i] = SearchResultOutput{
			RedditID:  doc.ExternalID,
			Title:     doc.Title,
			Subreddit: doc.Source,
			CreatedAt: doc.CreatedAt.UTC().Format(time.RFC3339),
			Score:     doc.Score,
			Comments:  doc.Comments,
			RankScore: results[i].RankScore,
			TitleHits: results[i].TitleHits,
			BodyHits:  results[i].BodyHits,
		}
	}

	return nil, output, nil
}

func (s *Server) handleTrendingTerms(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TrendInput,
) (*mcp.CallToolResult, TermTrendOutput, error) {
	rows, err := s.ports.Trends.TrendingTerms(ctx, domain.TrendOptions{Days: input.Days, Limit: input.Limit})
	if err != nil {
		return nil, TermTrendOutput{}, err
	}
	output := TermTrendOutput{Results: make([]TermTrendRow, len(rows)), Count: len(rows)}
	for i, r := range rows {
		output.Results[i] = TermTrendRow{
			TermID:     r.TermID,
			Term:       r.Term,
			TrendScore: r.TrendScore,
			Mentions:   r.Mentions,
			Recent24h:  r.Recent24h,
			Prev24h:    r.Prev24h,
			Spike:      r.Spike,
		}
	}
	return nil, output, nil
}

func (s *Server) handleTrendingCuisines(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TrendInput,
) (*mcp.CallToolResult, CuisineTrendOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = cuisineDefaultLimit
	}
	rows, err := s.ports.Trends.TrendingCuisines(ctx, domain.TrendOptions{Days: input.Days, Limit: limit})
	if err != nil {
		return nil, CuisineTrendOutput{}, err
	}
	output := CuisineTrendOutput{Results: make([]CuisineTrendRow, len(rows)), Count: len(rows)}
	for i, r := range rows {
		output.Results[i] = CuisineTrendRow{
			Origin:          r.Origin.String(),
			Label:           r.Label,
			TrendScore:      r.TrendScore,
			Mentions:        r.Mentions,
			Recent24h:       r.Recent24h,
			Prev24h:         r.Prev24h,
			Spike:           r.Spike,
			UniqueTerms:     r.UniqueTerms,
			SubredditSpread: r.SubredditSpread,
		}
	}
	return nil, output, nil
}

func (s *Server) handleRunMatching(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	report, err := s.ports.Matching.Run(ctx, domain.MatchOptions{Limit: input.Limit, Force: input.Force})
	if err != nil {
		return nil, MatchOutput{}, err
	}
	return nil, MatchOutput{
		Created:            report.Created,
		DocumentsProcessed: report.DocumentsProcessed,
		EmptyDocuments:     report.EmptyDocuments,
		ActiveTerms:        report.ActiveTerms,
		Duration:           report.Duration.String(),
	}, nil
}
