package parser

import (
	"fmt"
	"strconv"
	"time"
)

// defaultRetryAfter is assumed when a provider throttles without saying for
// how long.
const defaultRetryAfter = 60 * time.Second

// RateLimitError marks an invoice-parse attempt rejected by provider
// throttling (HTTP 429). The fallback chain uses RetryAfter to keep the
// provider out of rotation instead of hammering it on every upload.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError wraps a provider 429. A zero or negative retryAfterSecs
// falls back to defaultRetryAfter.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := time.Duration(retryAfterSecs) * time.Second
	if retryAfter <= 0 {
		retryAfter = defaultRetryAfter
	}
	return &RateLimitError{Provider: provider, RetryAfter: retryAfter, Err: err}
}

// ParseRetryAfterHeader reads a Retry-After header as whole seconds. Empty,
// malformed or negative values yield 0, which callers treat as "unknown".
func ParseRetryAfterHeader(val string) int {
	secs, err := strconv.Atoi(val)
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}
