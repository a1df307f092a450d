package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"printstock/internal/config"
	"printstock/internal/domain"
	"printstock/internal/parser"
	"printstock/internal/port"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Parser implements port.InvoiceParser using the OpenAI Chat Completions API.
type Parser struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewParser creates an OpenAI-based invoice parser from a provider config.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return newParser(cfg, apiURL)
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	return newParser(cfg, endpoint)
}

func newParser(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Parser{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*domain.ParsedInvoice, error) {
	prompt := parser.BuildInvoicePrompt(input.Snapshot)

	contentBlocks, err := buildContentBlocks(input, prompt)
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	reqBody := map[string]interface{}{
		"model":                 p.model,
		"max_completion_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, parser.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

func buildContentBlocks(input port.ParseInput, prompt string) ([]map[string]interface{}, error) {
	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)
	dataURI := fmt.Sprintf("data:%s;base64,%s", input.ContentType, encoded)
	var blocks []map[string]interface{}

	switch input.ContentType {
	case "application/pdf":
		blocks = append(blocks, map[string]interface{}{
			"type": "file",
			"file": map[string]interface{}{
				"filename":  "invoice.pdf",
				"file_data": dataURI,
			},
		})
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		blocks = append(blocks, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url": dataURI,
			},
		})
	default:
		return nil, fmt.Errorf("unsupported content type for parsing: %s", input.ContentType)
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": prompt,
	})

	return blocks, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte) (*domain.ParsedInvoice, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	text := resp.Choices[0].Message.Content

	// The model is prompted for strict JSON but is lenient about empty-string
	// ids and float quantities, so unmarshal through a tolerant DTO.
	var dto invoiceDTO
	if err := json.Unmarshal([]byte(text), &dto); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	return dto.toDomain(), nil
}

type invoiceDTO struct {
	Supplier         string    `json:"supplier"`
	InvoiceNumber    string    `json:"invoice_number"`
	ExpectedDelivery string    `json:"expected_delivery"`
	Notes            string    `json:"notes"`
	Items            []itemDTO `json:"items"`
}

type itemDTO struct {
	Kind          string          `json:"kind"`
	MaterialID    string          `json:"material_id"`
	ConsumableID  string          `json:"consumable_id"`
	Description   string          `json:"description"`
	Quantity      float64         `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	IsNew         bool            `json:"is_new"`
	SuggestedName string          `json:"suggested_name"`
	SuggestedKind string          `json:"suggested_kind"`
}

func (d invoiceDTO) toDomain() *domain.ParsedInvoice {
	invoice := &domain.ParsedInvoice{
		Supplier:         d.Supplier,
		InvoiceNumber:    d.InvoiceNumber,
		ExpectedDelivery: d.ExpectedDelivery,
		Notes:            d.Notes,
	}
	for _, it := range d.Items {
		invoice.Items = append(invoice.Items, domain.ParsedItem{
			Kind:          domain.ItemKind(it.Kind),
			MaterialID:    parseID(it.MaterialID),
			ConsumableID:  parseID(it.ConsumableID),
			Description:   it.Description,
			Quantity:      int(it.Quantity),
			UnitCost:      it.UnitCost,
			IsNew:         it.IsNew,
			SuggestedName: it.SuggestedName,
			SuggestedKind: domain.ItemKind(it.SuggestedKind),
		})
	}
	return invoice
}

func parseID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
