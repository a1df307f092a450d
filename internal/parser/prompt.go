package parser

import (
	"fmt"
	"strings"

	"printstock/internal/domain"
)

// BuildInvoicePrompt returns the extraction prompt for a supplier invoice.
// The current inventory is embedded so the model can match lines against
// existing records instead of flagging everything as new.
func BuildInvoicePrompt(snapshot domain.InventorySnapshot) string {
	var b strings.Builder

	b.WriteString(`You are a document data extraction assistant for a 3D-printing service. Analyze the provided supplier invoice and extract ALL line items.

IMPORTANT INSTRUCTIONS:
- Extract EVERY line item. Do not skip, summarize, or omit any items.
- Classify each line as "material" (filament spools, resin bottles), "consumable" (adhesives, nozzles, tools, packing) or "other".
- Match lines against the EXISTING INVENTORY below. When a line clearly refers to an existing record, set "is_new" to false and exactly one of "material_id" or "consumable_id" to that record's id. When unsure, set "is_new" to true and leave both ids empty.
- For new items, fill "suggested_name" with a clean display name and "suggested_kind" with "material" or "consumable".
- Quantities are positive integers; unit costs are non-negative numbers.
- Normalize the expected delivery date to YYYY-MM-DD if present.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation.

The JSON object must follow this schema:
{
  "supplier": "",
  "invoice_number": "",
  "expected_delivery": "",
  "notes": "",
  "items": [
    {
      "kind": "material",
      "material_id": null,
      "consumable_id": null,
      "description": "",
      "quantity": 1,
      "unit_cost": 0,
      "is_new": true,
      "suggested_name": "",
      "suggested_kind": "material"
    }
  ]
}

EXISTING INVENTORY:
`)

	b.WriteString("Materials:\n")
	if len(snapshot.Materials) == 0 {
		b.WriteString("(none)\n")
	}
	for _, m := range snapshot.Materials {
		fmt.Fprintf(&b, "- id=%s %s %s brand=%q colour=%q\n", m.ID, m.Type, m.Subtype, m.Brand, m.Colour)
	}

	b.WriteString("Consumables:\n")
	if len(snapshot.Consumables) == 0 {
		b.WriteString("(none)\n")
	}
	for _, c := range snapshot.Consumables {
		fmt.Fprintf(&b, "- id=%s %q category=%s\n", c.ID, c.Name, c.Category)
	}

	return b.String()
}
