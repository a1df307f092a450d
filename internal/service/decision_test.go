package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstock/internal/domain"
	"printstock/internal/service"
)

func TestBuildDecisions_OnlyNewItems(t *testing.T) {
	matchedID := uuid.New()
	invoice := &domain.ParsedInvoice{
		Items: []domain.ParsedItem{
			{Kind: domain.ItemKindMaterial, MaterialID: &matchedID, Description: "Black PLA"},
			{Kind: domain.ItemKindMaterial, IsNew: true, SuggestedName: "eSun PETG Red", SuggestedKind: domain.ItemKindMaterial},
			{Kind: domain.ItemKindConsumable, IsNew: true, SuggestedName: "Glue stick", SuggestedKind: domain.ItemKindConsumable},
		},
	}

	decisions := service.BuildDecisions(invoice)

	require.Len(t, decisions, 2)
	assert.Nil(t, decisions[0])
	assert.Equal(t, 1, decisions[1].ItemIndex)
	assert.Equal(t, 2, decisions[2].ItemIndex)
}

func TestNewDecision_MaterialDefaults(t *testing.T) {
	item := domain.ParsedItem{
		Kind:          domain.ItemKindMaterial,
		Description:   "ESUN-PETG-RED-1KG",
		SuggestedName: "eSun PETG Red",
		SuggestedKind: domain.ItemKindMaterial,
		Quantity:      2,
		UnitCost:      decimal.NewFromInt(25),
		IsNew:         true,
	}

	d := service.NewDecision(1, item)

	assert.Equal(t, domain.ActionCreate, d.Action)
	assert.Equal(t, domain.ItemKindMaterial, d.Category)
	assert.Equal(t, domain.MaterialTypeFilament, d.Material.Type)
	assert.Equal(t, "PETG", d.Material.Subtype)
	assert.Equal(t, 1000, d.Material.SpoolWeightGrams)
	assert.True(t, d.Material.Price.Equal(decimal.NewFromInt(25)))
	// The consumable draft is prefilled too, in case the user reclassifies.
	assert.Equal(t, "eSun PETG Red", d.Consumable.Name)
	assert.Equal(t, "25", d.Consumable.UnitCost)
}

func TestNewDecision_SubtypeInference(t *testing.T) {
	cases := []struct {
		name    string
		subtype string
		mType   domain.MaterialType
	}{
		{"Polymaker ABS Black", "ABS", domain.MaterialTypeFilament},
		{"Anycubic standard resin grey", "Resin", domain.MaterialTypeResin},
		{"Taulman nylon bridge", "Nylon", domain.MaterialTypeFilament},
		{"NinjaFlex TPU 85A", "TPU", domain.MaterialTypeFilament},
		{"Mystery filament spool", "PLA", domain.MaterialTypeFilament},
	}

	for _, tc := range cases {
		item := domain.ParsedItem{SuggestedName: tc.name, SuggestedKind: domain.ItemKindMaterial, IsNew: true}
		d := service.NewDecision(0, item)
		assert.Equal(t, tc.subtype, d.Material.Subtype, tc.name)
		assert.Equal(t, tc.mType, d.Material.Type, tc.name)
	}
}

func TestNewDecision_ConsumableFallsBackToDescription(t *testing.T) {
	item := domain.ParsedItem{
		Kind:        domain.ItemKindConsumable,
		Description: "Isopropyl alcohol 1L",
		IsNew:       true,
	}

	d := service.NewDecision(0, item)

	assert.Equal(t, domain.ItemKindConsumable, d.Category)
	assert.Equal(t, "Isopropyl alcohol 1L", d.Consumable.Name)
	assert.Equal(t, domain.ConsumableCategoryOther, d.Consumable.Category)
}

func TestDecisionApply_LinkShortcutAndRoundTrip(t *testing.T) {
	item := domain.ParsedItem{
		SuggestedName: "eSun PETG Red",
		SuggestedKind: domain.ItemKindMaterial,
		UnitCost:      decimal.NewFromInt(25),
		IsNew:         true,
	}
	d := service.NewDecision(0, item)

	brand := "eSun"
	d.Apply(domain.DecisionPatch{Material: &domain.MaterialDraftPatch{Brand: &brand}})

	// Linking flips the action and category in one step.
	linkID := uuid.New()
	d.Apply(domain.DecisionPatch{LinkedMaterialID: &linkID})
	assert.Equal(t, domain.ActionLink, d.Action)
	assert.Equal(t, domain.ItemKindMaterial, d.Category)
	require.NotNil(t, d.LinkedMaterialID)
	assert.Equal(t, linkID, *d.LinkedMaterialID)

	// Switching back to create keeps the previously entered draft.
	create := domain.ActionCreate
	d.Apply(domain.DecisionPatch{Action: &create})
	assert.Equal(t, domain.ActionCreate, d.Action)
	assert.Equal(t, "eSun", d.Material.Brand)
	assert.Equal(t, "PETG", d.Material.Subtype)
}
