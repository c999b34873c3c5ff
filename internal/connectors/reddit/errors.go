package reddit

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// ErrBlocked indicates reddit answered with something other than JSON,
// usually an HTML block page.
var ErrBlocked = errors.New("reddit: non-JSON response")

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining float64
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("reddit: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap lets callers match domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a non-200 listing response.
type APIError struct {
	StatusCode int
	// Snippet is the start of the response body.
	Snippet string
	URL     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit: HTTP %d: %s (URL: %s)", e.StatusCode, e.Snippet, e.URL)
}

// Unwrap lets callers match domain.ErrSourceUnavailable.
func (e *APIError) Unwrap() error {
	return domain.ErrSourceUnavailable
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsNotFound checks if the error indicates a missing or banned subreddit.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
