package port

import (
	"context"

	"printstock/internal/domain"
)

// ParseInput carries the data needed for invoice parsing. The inventory
// snapshot is included so the parser can match lines against existing records.
type ParseInput struct {
	FileBytes   []byte
	ContentType string
	Snapshot    domain.InventorySnapshot
}

// InvoiceParser abstracts LLM-based supplier invoice parsing.
type InvoiceParser interface {
	Parse(ctx context.Context, input ParseInput) (*domain.ParsedInvoice, error)
}
