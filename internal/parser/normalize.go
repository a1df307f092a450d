package parser

import (
	"github.com/google/uuid"

	"printstock/internal/domain"
)

// Normalize repairs model output in place so downstream code can rely on the
// parsed-item invariants: a non-new item references exactly one existing
// inventory record; quantities are positive; unit costs are non-negative.
// Items with dangling or ambiguous references are demoted to new.
func Normalize(invoice *domain.ParsedInvoice, snapshot domain.InventorySnapshot) {
	materialIDs := make(map[uuid.UUID]bool, len(snapshot.Materials))
	for _, m := range snapshot.Materials {
		materialIDs[m.ID] = true
	}
	consumableIDs := make(map[uuid.UUID]bool, len(snapshot.Consumables))
	for _, c := range snapshot.Consumables {
		consumableIDs[c.ID] = true
	}

	for i := range invoice.Items {
		item := &invoice.Items[i]

		switch item.Kind {
		case domain.ItemKindMaterial, domain.ItemKindConsumable, domain.ItemKindOther:
		default:
			item.Kind = domain.ItemKindOther
		}
		switch item.SuggestedKind {
		case domain.ItemKindMaterial, domain.ItemKindConsumable:
		default:
			if item.Kind == domain.ItemKindMaterial {
				item.SuggestedKind = domain.ItemKindMaterial
			} else {
				item.SuggestedKind = domain.ItemKindConsumable
			}
		}

		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.UnitCost.IsNegative() {
			item.UnitCost = item.UnitCost.Abs()
		}

		if item.MaterialID != nil && !materialIDs[*item.MaterialID] {
			item.MaterialID = nil
		}
		if item.ConsumableID != nil && !consumableIDs[*item.ConsumableID] {
			item.ConsumableID = nil
		}

		if !item.IsNew {
			hasMaterial := item.MaterialID != nil
			hasConsumable := item.ConsumableID != nil
			if hasMaterial == hasConsumable {
				// Zero or two references: the match is unusable.
				item.IsNew = true
				item.MaterialID = nil
				item.ConsumableID = nil
			}
		} else {
			item.MaterialID = nil
			item.ConsumableID = nil
		}
	}
}
