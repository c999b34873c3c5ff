package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

const (
	// DefaultBaseURL is reddit's public web endpoint.
	DefaultBaseURL = "https://www.reddit.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 20 * time.Second

	// DefaultLimit is the number of posts requested per listing.
	DefaultLimit = 50

	// MaxLimit is the largest page reddit serves.
	MaxLimit = 100

	// snippetLen bounds the body excerpt kept in APIError.
	snippetLen = 120
)

// Options configures a Client.
type Options struct {
	// BaseURL overrides DefaultBaseURL (used by tests).
	BaseURL string
	// UserAgent is sent with every request. Reddit rejects empty agents.
	UserAgent string
	// RequestsPerSecond throttles requests. Zero uses DefaultRequestsPerSecond,
	// a negative value disables throttling.
	RequestsPerSecond float64
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Client reads subreddit listings from reddit's public JSON endpoints.
type Client struct {
	http        *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *RateLimiter
	now         func() time.Time
}

// NewClient creates a client with the given options.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rps := opts.RequestsPerSecond
	if rps == 0 {
		rps = DefaultRequestsPerSecond
	}
	return &Client{
		http:        httpClient,
		baseURL:     baseURL,
		userAgent:   opts.UserAgent,
		rateLimiter: NewRateLimiter(rps),
		now:         time.Now,
	}
}

// RateLimiter returns the client's limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// listing mirrors the parts of reddit's Listing JSON that are used.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	SelfText    string   `json:"selftext"`
	CreatedUTC  *float64 `json:"created_utc"`
	Score       float64  `json:"score"`
	NumComments float64  `json:"num_comments"`
}

// FetchNew returns the newest posts of subreddit.
// Children without an id are skipped.
func (c *Client) FetchNew(ctx context.Context, subreddit string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	endpoint := fmt.Sprintf("%s/r/%s/new.json?limit=%d", c.baseURL, url.PathEscape(subreddit), limit)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	logger.Debug("GET %s", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Snippet:    snippet(body),
			URL:        endpoint,
		}
	}

	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, snippet(body))
	}

	fetchedAt := c.now().UTC()
	docs := make([]domain.Document, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		p := child.Data
		if p.ID == "" {
			continue
		}
		createdAt := fetchedAt
		if p.CreatedUTC != nil {
			createdAt = fromUnix(*p.CreatedUTC)
		}
		docs = append(docs, domain.Document{
			ExternalID: p.ID,
			Source:     subreddit,
			Title:      p.Title,
			Body:       p.SelfText,
			CreatedAt:  createdAt,
			Score:      int(p.Score),
			Comments:   int(p.NumComments),
			FetchedAt:  fetchedAt,
		})
	}
	return docs, nil
}

// fromUnix converts fractional epoch seconds to UTC.
func fromUnix(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
}

func snippet(body []byte) string {
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > snippetLen {
		s = s[:snippetLen]
	}
	return strings.TrimSpace(s)
}
