package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material represents a printing material in inventory (one spool or bottle SKU).
type Material struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	Type             MaterialType    `db:"material_type" json:"material_type"`
	Subtype          string          `db:"subtype" json:"subtype"`
	Brand            string          `db:"brand" json:"brand"`
	Colour           string          `db:"colour" json:"colour"`
	SpoolWeightGrams int             `db:"spool_weight_grams" json:"spool_weight_grams"`
	Price            decimal.Decimal `db:"price" json:"price"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Consumable represents a non-material inventory record (adhesives, nozzles, packing).
type Consumable struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	Name      string              `db:"name" json:"name"`
	Category  ConsumableCategory  `db:"category" json:"category"`
	UnitCost  decimal.NullDecimal `db:"unit_cost" json:"unit_cost"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
}

// InventorySnapshot is the read-only set of inventory records loaded at
// session start, used for similarity comparison and parser context.
type InventorySnapshot struct {
	Materials   []Material   `json:"materials"`
	Consumables []Consumable `json:"consumables"`
}

// ParsedInvoice is the structured result of document understanding for one
// uploaded supplier invoice. Immutable after creation.
type ParsedInvoice struct {
	Supplier         string       `json:"supplier,omitempty"`
	InvoiceNumber    string       `json:"invoice_number,omitempty"`
	ExpectedDelivery string       `json:"expected_delivery,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	Items            []ParsedItem `json:"items"`
}

// ParsedItem is one detected line on the invoice.
//
// Invariant: if IsNew is false, exactly one of MaterialID/ConsumableID is set
// and Description reflects the matched record.
type ParsedItem struct {
	Kind          ItemKind        `json:"kind"`
	MaterialID    *uuid.UUID      `json:"material_id,omitempty"`
	ConsumableID  *uuid.UUID      `json:"consumable_id,omitempty"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	IsNew         bool            `json:"is_new"`
	SuggestedName string          `json:"suggested_name,omitempty"`
	SuggestedKind ItemKind        `json:"suggested_kind,omitempty"`
}

// DisplayName returns the suggested name falling back to the raw description.
func (p ParsedItem) DisplayName() string {
	if p.SuggestedName != "" {
		return p.SuggestedName
	}
	return p.Description
}

// MaterialDraft is the create-form for a new material.
type MaterialDraft struct {
	Type             MaterialType    `json:"material_type"`
	Subtype          string          `json:"subtype"`
	Brand            string          `json:"brand"`
	Colour           string          `json:"colour"`
	SpoolWeightGrams int             `json:"spool_weight_grams"`
	Price            decimal.Decimal `json:"price"`
}

// ConsumableDraft is the create-form for a new consumable. UnitCost is kept
// as entered text and parsed at creation time.
type ConsumableDraft struct {
	Name     string             `json:"name"`
	Category ConsumableCategory `json:"category"`
	UnitCost string             `json:"unit_cost"`
}

// Decision is the user's intent for one new (unmatched) parsed item, keyed by
// the item's position in ParsedInvoice.Items. Both draft forms are kept so a
// create -> link -> create round trip loses no entered data.
type Decision struct {
	ItemIndex          int             `json:"item_index"`
	Action             DecisionAction  `json:"action"`
	Category           ItemKind        `json:"category"`
	Material           MaterialDraft   `json:"material"`
	Consumable         ConsumableDraft `json:"consumable"`
	LinkedMaterialID   *uuid.UUID      `json:"linked_material_id,omitempty"`
	LinkedConsumableID *uuid.UUID      `json:"linked_consumable_id,omitempty"`
}

// MaterialDraftPatch updates individual material draft fields.
type MaterialDraftPatch struct {
	Type             *MaterialType    `json:"material_type,omitempty"`
	Subtype          *string          `json:"subtype,omitempty"`
	Brand            *string          `json:"brand,omitempty"`
	Colour           *string          `json:"colour,omitempty"`
	SpoolWeightGrams *int             `json:"spool_weight_grams,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
}

// ConsumableDraftPatch updates individual consumable draft fields.
type ConsumableDraftPatch struct {
	Name     *string             `json:"name,omitempty"`
	Category *ConsumableCategory `json:"category,omitempty"`
	UnitCost *string             `json:"unit_cost,omitempty"`
}

// DecisionPatch is a partial update to a Decision. Every set field is a plain
// replace. Setting a linked ID also flips the action to link and the category
// to the linked record's kind (the "use this" shortcut).
type DecisionPatch struct {
	Action             *DecisionAction       `json:"action,omitempty"`
	Category           *ItemKind             `json:"category,omitempty"`
	Material           *MaterialDraftPatch   `json:"material,omitempty"`
	Consumable         *ConsumableDraftPatch `json:"consumable,omitempty"`
	LinkedMaterialID   *uuid.UUID            `json:"linked_material_id,omitempty"`
	LinkedConsumableID *uuid.UUID            `json:"linked_consumable_id,omitempty"`
}

// Apply mutates the decision in place per the patch semantics.
func (d *Decision) Apply(p DecisionPatch) {
	if p.Action != nil {
		d.Action = *p.Action
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Material != nil {
		m := p.Material
		if m.Type != nil {
			d.Material.Type = *m.Type
		}
		if m.Subtype != nil {
			d.Material.Subtype = *m.Subtype
		}
		if m.Brand != nil {
			d.Material.Brand = *m.Brand
		}
		if m.Colour != nil {
			d.Material.Colour = *m.Colour
		}
		if m.SpoolWeightGrams != nil {
			d.Material.SpoolWeightGrams = *m.SpoolWeightGrams
		}
		if m.Price != nil {
			d.Material.Price = *m.Price
		}
	}
	if p.Consumable != nil {
		c := p.Consumable
		if c.Name != nil {
			d.Consumable.Name = *c.Name
		}
		if c.Category != nil {
			d.Consumable.Category = *c.Category
		}
		if c.UnitCost != nil {
			d.Consumable.UnitCost = *c.UnitCost
		}
	}
	if p.LinkedMaterialID != nil {
		id := *p.LinkedMaterialID
		d.LinkedMaterialID = &id
		d.Action = ActionLink
		d.Category = ItemKindMaterial
	}
	if p.LinkedConsumableID != nil {
		id := *p.LinkedConsumableID
		d.LinkedConsumableID = &id
		d.Action = ActionLink
		d.Category = ItemKindConsumable
	}
}

// Resolution maps one parsed item to a concrete inventory record after bulk
// commit. Items whose creation failed carry an error message and no ID.
type Resolution struct {
	ItemIndex   int        `json:"item_index"`
	Kind        ItemKind   `json:"kind"`
	InventoryID *uuid.UUID `json:"inventory_id,omitempty"`
	Created     bool       `json:"created"`
	Error       string     `json:"error,omitempty"`
}

// PurchaseOrder is a persisted purchase order built from a reconciled invoice.
type PurchaseOrder struct {
	ID               uuid.UUID           `db:"id" json:"id"`
	Supplier         string              `db:"supplier" json:"supplier"`
	InvoiceNumber    string              `db:"invoice_number" json:"invoice_number"`
	ExpectedDelivery string              `db:"expected_delivery" json:"expected_delivery"`
	Notes            string              `db:"notes" json:"notes"`
	Status           PurchaseOrderStatus `db:"status" json:"status"`
	CreatedAt        time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updated_at"`
	Lines            []PurchaseOrderLine `db:"-" json:"lines"`
}

// PurchaseOrderLine is one line of a purchase order, in supplier invoice order.
type PurchaseOrderLine struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	PurchaseOrderID uuid.UUID       `db:"purchase_order_id" json:"purchase_order_id"`
	Position        int             `db:"position" json:"position"`
	Kind            ItemKind        `db:"kind" json:"kind"`
	MaterialID      *uuid.UUID      `db:"material_id" json:"material_id,omitempty"`
	ConsumableID    *uuid.UUID      `db:"consumable_id" json:"consumable_id,omitempty"`
	Description     string          `db:"description" json:"description"`
	Quantity        int             `db:"quantity" json:"quantity"`
	UnitCost        decimal.Decimal `db:"unit_cost" json:"unit_cost"`
}
