package service

import (
	"strings"

	"printstock/internal/domain"
)

// defaultSpoolWeightGrams is assumed for new spools when the invoice line
// gives no weight.
const defaultSpoolWeightGrams = 1000

// BuildDecisions creates one default decision per new (unmatched) parsed
// item, keyed by the item's position in the invoice. Already-matched items
// get no decision.
func BuildDecisions(invoice *domain.ParsedInvoice) map[int]*domain.Decision {
	decisions := make(map[int]*domain.Decision)
	for i, item := range invoice.Items {
		if item.IsNew {
			decisions[i] = NewDecision(i, item)
		}
	}
	return decisions
}

// NewDecision builds the system default decision for a new parsed item. The
// system assumes novelty: action starts as create and the user explicitly
// switches to link.
func NewDecision(index int, item domain.ParsedItem) *domain.Decision {
	name := item.DisplayName()

	category := domain.ItemKindConsumable
	if item.SuggestedKind == domain.ItemKindMaterial {
		category = domain.ItemKindMaterial
	}

	return &domain.Decision{
		ItemIndex: index,
		Action:    domain.ActionCreate,
		Category:  category,
		Material: domain.MaterialDraft{
			Type:             inferMaterialType(name),
			Subtype:          inferSubtype(name),
			Brand:            "",
			Colour:           "",
			SpoolWeightGrams: defaultSpoolWeightGrams,
			Price:            item.UnitCost,
		},
		Consumable: domain.ConsumableDraft{
			Name:     name,
			Category: domain.ConsumableCategoryOther,
			UnitCost: item.UnitCost.String(),
		},
	}
}

// inferSubtype searches the name for the fixed subtype vocabulary,
// case-insensitively, first match wins. Defaults to PLA.
func inferSubtype(name string) string {
	lower := strings.ToLower(name)
	for _, sub := range domain.MaterialSubtypes {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return sub
		}
	}
	return "PLA"
}

// inferMaterialType returns resin when the name mentions resin, filament
// otherwise.
func inferMaterialType(name string) domain.MaterialType {
	if strings.Contains(strings.ToLower(name), "resin") {
		return domain.MaterialTypeResin
	}
	return domain.MaterialTypeFilament
}
