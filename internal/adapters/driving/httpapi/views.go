package httpapi

import (
	"math"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// Response envelopes.

type errorResponse struct {
	Results []any  `json:"results"`
	Error   string `json:"error"`
}

type trendResponse[T any] struct {
	Days    int `json:"days"`
	Limit   int `json:"limit"`
	Results []T `json:"results"`
}

type searchResponse struct {
	Query   string       `json:"q"`
	Days    int          `json:"days"`
	Limit   int          `json:"limit"`
	Term    *string      `json:"term"`
	Results []searchView `json:"results"`
}

type postsResponse struct {
	Limit   int        `json:"limit"`
	Results []postView `json:"results"`
}

// Row views.

type termTrendView struct {
	TermID     int64   `json:"term_id"`
	Term       string  `json:"term"`
	TrendScore float64 `json:"trend_score"`
	Mentions   int     `json:"mentions"`
	Recent24h  int     `json:"recent_24h"`
	Prev24h    int     `json:"prev_24h"`
	Spike      float64 `json:"spike"`
}

type cuisineTrendView struct {
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

type searchView struct {
	RedditID    string  `json:"reddit_id"`
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  string  `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	RankScore   float64 `json:"rank_score"`
	TitleHits   int     `json:"title_hits"`
	BodyHits    int     `json:"body_hits"`
}

type postView struct {
	RedditID    string `json:"reddit_id"`
	Subreddit   string `json:"subreddit"`
	Title       string `json:"title"`
	CreatedUTC  string `json:"created_utc"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func termTrendViews(rows []domain.TermTrend) []termTrendView {
	out := make([]termTrendView, 0, len(rows))
	for _, r := range rows {
		out = append(out, termTrendView{
			TermID:     r.TermID,
			Term:       r.Term,
			TrendScore: round(r.TrendScore, 4),
			Mentions:   r.Mentions,
			Recent24h:  r.Recent24h,
			Prev24h:    r.Prev24h,
			Spike:      round(r.Spike, 4),
		})
	}
	return out
}

func cuisineTrendViews(rows []domain.CuisineTrend) []cuisineTrendView {
	out := make([]cuisineTrendView, 0, len(rows))
	for _, r := range rows {
		out = append(out, cuisineTrendView{
			Origin:          r.Origin.String(),
			Label:           r.Label,
			TrendScore:      round(r.TrendScore, 4),
			Mentions:        r.Mentions,
			Recent24h:       r.Recent24h,
			Prev24h:         r.Prev24h,
			Spike:           round(r.Spike, 4),
			UniqueTerms:     r.UniqueTerms,
			SubredditSpread: r.SubredditSpread,
		})
	}
	return out
}

func searchViews(results []domain.SearchResult) []searchView {
	out := make([]searchView, 0, len(results))
	for _, r := range results {
		out = append(out, searchView{
			RedditID:    r.Document.ExternalID,
			Title:       r.Document.Title,
			Subreddit:   r.Document.Source,
			CreatedUTC:  isoTime(r.Document.CreatedAt),
			Score:       r.Document.Score,
			NumComments: r.Document.Comments,
			RankScore:   round(r.RankScore, 6),
			TitleHits:   r.TitleHits,
			BodyHits:    r.BodyHits,
		})
	}
	return out
}

func postViews(docs []domain.Document) []postView {
	out := make([]postView, 0, len(docs))
	for _, d := range docs {
		out = append(out, postView{
			RedditID:    d.ExternalID,
			Subreddit:   d.Source,
			Title:       d.Title,
			CreatedUTC:  isoTime(d.CreatedAt),
			Score:       d.Score,
			NumComments: d.Comments,
		})
	}
	return out
}
