package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"printstock/internal/domain"
	"printstock/internal/service"
	"printstock/mocks"
)

func newInventoryService() (service.InventoryService, *mocks.MockMaterialRepo, *mocks.MockConsumableRepo) {
	materialRepo := new(mocks.MockMaterialRepo)
	consumableRepo := new(mocks.MockConsumableRepo)
	return service.NewInventoryService(materialRepo, consumableRepo), materialRepo, consumableRepo
}

func TestCreateMaterial_Defaults(t *testing.T) {
	svc, materialRepo, _ := newInventoryService()
	materialRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Material")).Return(nil)

	m, err := svc.CreateMaterial(context.Background(), domain.MaterialDraft{
		Subtype: "PETG",
		Price:   decimal.NewFromInt(25),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.MaterialTypeFilament, m.Type)
	assert.Equal(t, 1000, m.SpoolWeightGrams)
	assert.NotEqual(t, "", m.ID.String())
	materialRepo.AssertExpectations(t)
}

func TestCreateMaterial_Validation(t *testing.T) {
	svc, materialRepo, _ := newInventoryService()

	_, err := svc.CreateMaterial(context.Background(), domain.MaterialDraft{Subtype: "  "})
	assert.ErrorIs(t, err, domain.ErrSubtypeRequired)

	_, err = svc.CreateMaterial(context.Background(), domain.MaterialDraft{
		Subtype: "PLA",
		Price:   decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)

	materialRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMaterial_RepoError(t *testing.T) {
	svc, materialRepo, _ := newInventoryService()
	materialRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.CreateMaterial(context.Background(), domain.MaterialDraft{Subtype: "PLA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestUpdateMaterial_ReplacesFields(t *testing.T) {
	svc, materialRepo, _ := newInventoryService()
	existing := &domain.Material{
		ID:      uuid.New(),
		Type:    domain.MaterialTypeFilament,
		Subtype: "PLA", Brand: "eSun", Colour: "Black",
		SpoolWeightGrams: 1000,
		Price:            decimal.NewFromInt(20),
	}
	materialRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	materialRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Material")).Return(nil)

	m, err := svc.UpdateMaterial(context.Background(), existing.ID, domain.MaterialDraft{
		Subtype: "PETG",
		Brand:   "Prusament",
		Colour:  "Orange",
		Price:   decimal.NewFromInt(30),
	})

	require.NoError(t, err)
	assert.Equal(t, "PETG", m.Subtype)
	assert.Equal(t, "Prusament", m.Brand)
	assert.True(t, m.Price.Equal(decimal.NewFromInt(30)))
	// Omitted type and weight keep their stored values.
	assert.Equal(t, domain.MaterialTypeFilament, m.Type)
	assert.Equal(t, 1000, m.SpoolWeightGrams)
	materialRepo.AssertExpectations(t)
}

func TestUpdateMaterial_Validation(t *testing.T) {
	svc, materialRepo, _ := newInventoryService()
	id := uuid.New()

	_, err := svc.UpdateMaterial(context.Background(), id, domain.MaterialDraft{})
	assert.ErrorIs(t, err, domain.ErrSubtypeRequired)

	_, err = svc.UpdateMaterial(context.Background(), id, domain.MaterialDraft{
		Subtype: "PLA", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)

	materialRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateMaterial_NotFound(t *testing.T) {
	svc, materialRepo, _ := newInventoryService()
	id := uuid.New()
	materialRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.UpdateMaterial(context.Background(), id, domain.MaterialDraft{Subtype: "PLA"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateConsumable_ReplacesFields(t *testing.T) {
	svc, _, consumableRepo := newInventoryService()
	existing := &domain.Consumable{
		ID:       uuid.New(),
		Name:     "Glue stick",
		Category: domain.ConsumableCategoryAdhesive,
	}
	consumableRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	consumableRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Consumable")).Return(nil)

	c, err := svc.UpdateConsumable(context.Background(), existing.ID, domain.ConsumableDraft{
		Name:     "  Magigoo glue  ",
		UnitCost: "9.95",
	})

	require.NoError(t, err)
	assert.Equal(t, "Magigoo glue", c.Name)
	// Omitted category keeps its stored value.
	assert.Equal(t, domain.ConsumableCategoryAdhesive, c.Category)
	require.True(t, c.UnitCost.Valid)
	assert.True(t, c.UnitCost.Decimal.Equal(decimal.RequireFromString("9.95")))
	consumableRepo.AssertExpectations(t)
}

func TestUpdateConsumable_Validation(t *testing.T) {
	svc, _, consumableRepo := newInventoryService()
	id := uuid.New()

	_, err := svc.UpdateConsumable(context.Background(), id, domain.ConsumableDraft{Name: " "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.UpdateConsumable(context.Background(), id, domain.ConsumableDraft{Name: "Glue", UnitCost: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidUnitCost)

	consumableRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateConsumable_ParsesUnitCost(t *testing.T) {
	svc, _, consumableRepo := newInventoryService()
	consumableRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Consumable")).Return(nil)

	c, err := svc.CreateConsumable(context.Background(), domain.ConsumableDraft{
		Name:     "  Glue stick  ",
		UnitCost: "4.50",
	})

	require.NoError(t, err)
	assert.Equal(t, "Glue stick", c.Name)
	assert.Equal(t, domain.ConsumableCategoryOther, c.Category)
	require.True(t, c.UnitCost.Valid)
	assert.True(t, c.UnitCost.Decimal.Equal(decimal.RequireFromString("4.50")))
}

func TestCreateConsumable_EmptyUnitCostMeansNone(t *testing.T) {
	svc, _, consumableRepo := newInventoryService()
	consumableRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.CreateConsumable(context.Background(), domain.ConsumableDraft{Name: "Nozzle"})
	require.NoError(t, err)
	assert.False(t, c.UnitCost.Valid)
}

func TestCreateConsumable_Validation(t *testing.T) {
	svc, _, consumableRepo := newInventoryService()

	_, err := svc.CreateConsumable(context.Background(), domain.ConsumableDraft{Name: " "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.CreateConsumable(context.Background(), domain.ConsumableDraft{Name: "Glue", UnitCost: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidUnitCost)

	_, err = svc.CreateConsumable(context.Background(), domain.ConsumableDraft{Name: "Glue", UnitCost: "-2"})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)

	consumableRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSnapshot_LoadsBothKinds(t *testing.T) {
	svc, materialRepo, consumableRepo := newInventoryService()
	materials := []domain.Material{{Subtype: "PLA"}}
	consumables := []domain.Consumable{{Name: "Glue stick"}}
	materialRepo.On("List", mock.Anything).Return(materials, nil)
	consumableRepo.On("List", mock.Anything).Return(consumables, nil)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, materials, snap.Materials)
	assert.Equal(t, consumables, snap.Consumables)
}

func TestSnapshot_MaterialListError(t *testing.T) {
	svc, materialRepo, _ := newInventoryService()
	materialRepo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading materials")
}
