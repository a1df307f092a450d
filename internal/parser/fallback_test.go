package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstock/internal/domain"
	"printstock/internal/parser"
	"printstock/internal/port"
)

// stubParser is a minimal InvoiceParser whose behavior is scripted per test.
type stubParser struct {
	invoice *domain.ParsedInvoice
	err     error
	calls   int
}

func (s *stubParser) Parse(_ context.Context, _ port.ParseInput) (*domain.ParsedInvoice, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.invoice, nil
}

func chain(primary, secondary *stubParser) *parser.FallbackParser {
	return parser.NewFallbackParser(
		parser.Provider{Name: "primary", Parser: primary},
		parser.Provider{Name: "secondary", Parser: secondary},
	)
}

func TestFallbackParser_FirstSuccessWins(t *testing.T) {
	first := &stubParser{invoice: &domain.ParsedInvoice{Supplier: "primary"}}
	second := &stubParser{invoice: &domain.ParsedInvoice{Supplier: "secondary"}}
	f := chain(first, second)

	out, err := f.Parse(context.Background(), port.ParseInput{})

	require.NoError(t, err)
	assert.Equal(t, "primary", out.Supplier)
	assert.Equal(t, 0, second.calls)
}

func TestFallbackParser_FallsThroughOnError(t *testing.T) {
	first := &stubParser{err: errors.New("bad output")}
	second := &stubParser{invoice: &domain.ParsedInvoice{Supplier: "secondary"}}
	f := chain(first, second)

	out, err := f.Parse(context.Background(), port.ParseInput{})

	require.NoError(t, err)
	assert.Equal(t, "secondary", out.Supplier)
}

func TestFallbackParser_AllFail(t *testing.T) {
	first := &stubParser{err: errors.New("bad output")}
	second := &stubParser{err: errors.New("worse output")}
	f := chain(first, second)

	_, err := f.Parse(context.Background(), port.ParseInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
	assert.Contains(t, err.Error(), "worse output")
}

func TestFallbackParser_OpensCircuitOnRateLimit(t *testing.T) {
	first := &stubParser{err: parser.NewRateLimitError("primary", errors.New("429"), 60)}
	second := &stubParser{invoice: &domain.ParsedInvoice{Supplier: "secondary"}}
	f := chain(first, second)

	out, err := f.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "secondary", out.Supplier)
	assert.Equal(t, 1, first.calls)

	// The rate-limited provider is skipped while its circuit is open.
	_, err = f.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 2, second.calls)
}

func TestFallbackParser_AllRateLimited(t *testing.T) {
	first := &stubParser{err: parser.NewRateLimitError("primary", errors.New("429"), 30)}
	second := &stubParser{err: parser.NewRateLimitError("secondary", errors.New("429"), 90)}
	f := chain(first, second)

	_, err := f.Parse(context.Background(), port.ParseInput{})

	var rlErr *parser.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}
