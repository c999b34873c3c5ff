package reddit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond spaces listing requests two seconds apart.
	DefaultRequestsPerSecond = 0.5

	// MinBuffer is the minimum remaining requests before waiting for reset.
	MinBuffer = 2

	// HeaderRateRemaining is the remaining requests header (may be fractional).
	HeaderRateRemaining = "X-Ratelimit-Remaining"

	// HeaderRateReset is the number of seconds until the window resets.
	HeaderRateReset = "X-Ratelimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles listing requests proactively with a token bucket
// and reactively from reddit's rate limit headers.
type RateLimiter struct {
	mu        sync.Mutex
	remaining float64
	known     bool
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer float64
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second.
// A non-positive rps disables proactive throttling.
func NewRateLimiter(rps float64) *RateLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &RateLimiter{
		bucket:    rate.NewLimiter(limit, 1),
		minBuffer: MinBuffer,
		now:       time.Now,
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	low := r.known && r.remaining < r.minBuffer
	resetTime := r.resetTime
	now := r.now()
	r.mu.Unlock()

	if low && now.Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(resetTime.Sub(now)):
		}
	}
	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.ParseFloat(remaining, 64); err == nil {
			r.remaining = val
			r.known = true
		}
	}
	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseFloat(reset, 64); err == nil {
			r.resetTime = r.now().Add(time.Duration(val * float64(time.Second)))
		}
	}
}

// CheckRateLimit records the response headers and returns a
// RateLimitError for a 429 response.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil {
		return nil
	}
	r.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	r.mu.Lock()
	resetTime := r.resetTime
	remaining := r.remaining
	now := r.now()
	r.mu.Unlock()

	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			resetTime = now.Add(time.Duration(seconds) * time.Second)
		}
	}
	return &RateLimitError{ResetAt: resetTime, Remaining: remaining}
}

// Remaining returns the last reported remaining requests and whether
// reddit has reported one yet.
func (r *RateLimiter) Remaining() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.known
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
