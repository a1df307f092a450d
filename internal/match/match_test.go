package match_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"printstock/internal/domain"
	"printstock/internal/match"
)

func material(subtype, brand, colour string) domain.Material {
	return domain.Material{
		ID:      uuid.New(),
		Type:    domain.MaterialTypeFilament,
		Subtype: subtype,
		Brand:   brand,
		Colour:  colour,
	}
}

func consumable(name string) domain.Consumable {
	return domain.Consumable{
		ID:       uuid.New(),
		Name:     name,
		Category: domain.ConsumableCategoryOther,
	}
}

func TestTokenize(t *testing.T) {
	tokens := match.Tokenize("eSun PETG - Galaxy_Black, 1kg")
	assert.Equal(t, []string{"esun", "petg", "galaxy", "black", "1kg"}, tokens)
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	tokens := match.Tokenize("2x PLA of 1k")
	assert.Equal(t, []string{"pla"}, tokens)
}

func TestMaterialCompareString(t *testing.T) {
	m := material("PLA", "Prusament", "Galaxy Black")
	assert.Equal(t, "pla prusament galaxy black", match.MaterialCompareString(m))
}

func TestFind_MaterialNeedsTwoTokenHits(t *testing.T) {
	snap := domain.InventorySnapshot{
		Materials: []domain.Material{
			material("PLA", "Prusament", "Galaxy Black"),
			material("ABS", "Generic", "White"),
		},
	}

	s := match.Find("Prusament PLA Galaxy Black 1kg", snap)
	assert.Len(t, s.Materials, 1)
	assert.Equal(t, "PLA", s.Materials[0].Subtype)

	// A single overlapping token is not enough for a material.
	s = match.Find("random white sticker", snap)
	assert.Empty(t, s.Materials)
}

func TestFind_ConsumableMatchesOnSingleToken(t *testing.T) {
	snap := domain.InventorySnapshot{
		Consumables: []domain.Consumable{
			consumable("Glue stick"),
			consumable("Nozzle 0.4mm brass"),
		},
	}

	s := match.Find("Magigoo glue bottle", snap)
	assert.Len(t, s.Consumables, 1)
	assert.Equal(t, "Glue stick", s.Consumables[0].Name)
}

func TestFind_CapsAtThreePerKind(t *testing.T) {
	snap := domain.InventorySnapshot{}
	for i := 0; i < 5; i++ {
		snap.Materials = append(snap.Materials, material("PETG", "eSun", "Red"))
		snap.Consumables = append(snap.Consumables, consumable("PETG adhesive"))
	}

	s := match.Find("eSun PETG Red", snap)
	assert.Len(t, s.Materials, 3)
	assert.Len(t, s.Consumables, 3)
	// Snapshot order is preserved.
	assert.Equal(t, snap.Materials[0].ID, s.Materials[0].ID)
}

func TestFind_EmptyInputs(t *testing.T) {
	snap := domain.InventorySnapshot{
		Materials: []domain.Material{material("PLA", "eSun", "Black")},
	}

	assert.Empty(t, match.Find("", snap).Materials)
	assert.Empty(t, match.Find("of", snap).Materials)

	s := match.Find("eSun PLA Black", domain.InventorySnapshot{})
	assert.Empty(t, s.Materials)
	assert.Empty(t, s.Consumables)
}
