package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{
				{
					Document: domain.Document{
						ID:         7,
						ExternalID: "abc1",
						Source:     "Cooking",
						Title:      "Ramen night",
						CreatedAt:  time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
						Score:      12,
						Comments:   3,
					},
					RankScore: 2.5,
					TitleHits: 1,
					BodyHits:  2,
				},
			},
		}

		ports := basePorts()
		ports.Search = mockSearch
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: " ramen ", Days: 10, Limit: 5, Term: "ramen"}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "ramen", mockSearch.lastQuery)
		assert.Equal(t, domain.SearchOptions{Days: 10, Limit: 5, Term: "ramen"}, mockSearch.lastOpts)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		row := output.Results[0]
		assert.Equal(t, "abc1", row.RedditID)
		assert.Equal(t, "Cooking", row.Subreddit)
		assert.Equal(t, "Ramen night", row.Title)
		assert.Equal(t, "2024-06-15T10:00:00Z", row.CreatedAt)
		assert.Equal(t, 2.5, row.RankScore)
		assert.Equal(t, 1, row.TitleHits)
		assert.Equal(t, 2, row.BodyHits)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		server, err := NewServer(basePorts())
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "   "})
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})

	t.Run("no results gives empty list", func(t *testing.T) {
		server, err := NewServer(basePorts())
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Results)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		ports := basePorts()
		ports.Search = &mockSearchService{err: errors.New("search failed")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleTrendingTerms(t *testing.T) {
	ctx := context.Background()
	trends := &mockTrendService{
		terms: []domain.TermTrend{
			{TermID: 1, Term: "birria", TrendScore: 3.2, Mentions: 4, Recent24h: 3, Prev24h: 1, Spike: 2},
		},
	}
	ports := basePorts()
	ports.Trends = trends
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleTrendingTerms(ctx, nil, TrendInput{Days: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.TrendOptions{Days: 3}, trends.lastOpts)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, TermTrendRow{
		TermID: 1, Term: "birria", TrendScore: 3.2, Mentions: 4, Recent24h: 3, Prev24h: 1, Spike: 2,
	}, output.Results[0])

	trends.err = errors.New("boom")
	_, _, err = server.handleTrendingTerms(ctx, nil, TrendInput{})
	assert.Error(t, err)
}

func TestServer_handleTrendingCuisines(t *testing.T) {
	ctx := context.Background()
	trends := &mockTrendService{
		cuisines: []domain.CuisineTrend{
			{Origin: domain.OriginKorean, Label: "Korean", TrendScore: 1.5, Mentions: 2, UniqueTerms: 2, SubredditSpread: 1},
		},
	}
	ports := basePorts()
	ports.Trends = trends
	server, err := NewServer(ports)
	require.NoError(t, err)

	t.Run("default limit is 12", func(t *testing.T) {
		_, output, err := server.handleTrendingCuisines(ctx, nil, TrendInput{})
		require.NoError(t, err)
		assert.Equal(t, 12, trends.lastOpts.Limit)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "korean", output.Results[0].Origin)
		assert.Equal(t, "Korean", output.Results[0].Label)
		assert.Equal(t, 2, output.Results[0].UniqueTerms)
	})

	t.Run("explicit limit kept", func(t *testing.T) {
		_, _, err := server.handleTrendingCuisines(ctx, nil, TrendInput{Limit: 3, Days: 14})
		require.NoError(t, err)
		assert.Equal(t, domain.TrendOptions{Days: 14, Limit: 3}, trends.lastOpts)
	})
}

func TestServer_handleRunMatching(t *testing.T) {
	ctx := context.Background()
	matcher := &mockMatchingService{
		report: domain.MatchReport{
			Created:            5,
			DocumentsProcessed: 3,
			EmptyDocuments:     1,
			ActiveTerms:        40,
			Duration:           1500 * time.Millisecond,
		},
	}
	ports := basePorts()
	ports.Matching = matcher
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleRunMatching(ctx, nil, MatchInput{Limit: 100, Force: true})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchOptions{Limit: 100, Force: true}, matcher.lastOpts)
	assert.Equal(t, MatchOutput{
		Created:            5,
		DocumentsProcessed: 3,
		EmptyDocuments:     1,
		ActiveTerms:        40,
		Duration:           "1.5s",
	}, output)

	matcher.err = domain.ErrInvalidInput
	_, _, err = server.handleRunMatching(ctx, nil, MatchInput{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
