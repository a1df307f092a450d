package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"printstock/internal/domain"
	"printstock/internal/port"
)

// Provider pairs an invoice parser with the provider name used in logs and
// rate-limit errors (matches config.ParserProviderConfig.Provider).
type Provider struct {
	Name   string
	Parser port.InvoiceParser
}

// circuitState tracks rate-limit backoff for a single provider. The zero
// value is closed (healthy).
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackParser implements port.InvoiceParser over an ordered provider
// chain: primary first, then the configured secondary. A provider that
// returns 429 sits out until its Retry-After window has passed.
type FallbackParser struct {
	providers []Provider
	circuits  []*circuitState
}

// NewFallbackParser creates a FallbackParser trying providers in the given order.
func NewFallbackParser(providers ...Provider) *FallbackParser {
	circuits := make([]*circuitState, len(providers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackParser{providers: providers, circuits: circuits}
}

func (f *FallbackParser) Parse(ctx context.Context, input port.ParseInput) (*domain.ParsedInvoice, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, p := range f.providers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("parser.FallbackParser: skipping %s (circuit open until %s)", p.Name, resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := p.Parser.Parse(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("parser.FallbackParser: %s failed: %v", p.Name, err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		// Every provider was rate limited or skipped on an open circuit.
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}
