package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"printstock/internal/domain"
	"printstock/internal/port"
)

// InventoryService defines the inventory management contract. It is the
// creation collaborator for the reconciliation flow: draft validation lives
// here, not in the decision model.
type InventoryService interface {
	CreateMaterial(ctx context.Context, draft domain.MaterialDraft) (*domain.Material, error)
	GetMaterial(ctx context.Context, id uuid.UUID) (*domain.Material, error)
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	UpdateMaterial(ctx context.Context, id uuid.UUID, draft domain.MaterialDraft) (*domain.Material, error)
	DeleteMaterial(ctx context.Context, id uuid.UUID) error

	CreateConsumable(ctx context.Context, draft domain.ConsumableDraft) (*domain.Consumable, error)
	GetConsumable(ctx context.Context, id uuid.UUID) (*domain.Consumable, error)
	ListConsumables(ctx context.Context) ([]domain.Consumable, error)
	UpdateConsumable(ctx context.Context, id uuid.UUID, draft domain.ConsumableDraft) (*domain.Consumable, error)
	DeleteConsumable(ctx context.Context, id uuid.UUID) error

	// Snapshot loads the full current inventory for a reconciliation session.
	Snapshot(ctx context.Context) (domain.InventorySnapshot, error)
}

type inventoryService struct {
	materialRepo   port.MaterialRepository
	consumableRepo port.ConsumableRepository
}

// NewInventoryService creates a new InventoryService implementation.
func NewInventoryService(materialRepo port.MaterialRepository, consumableRepo port.ConsumableRepository) InventoryService {
	return &inventoryService{
		materialRepo:   materialRepo,
		consumableRepo: consumableRepo,
	}
}

func (s *inventoryService) CreateMaterial(ctx context.Context, draft domain.MaterialDraft) (*domain.Material, error) {
	if strings.TrimSpace(draft.Subtype) == "" {
		return nil, domain.ErrSubtypeRequired
	}
	if draft.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}

	mType := draft.Type
	if mType == "" {
		mType = domain.MaterialTypeFilament
	}
	weight := draft.SpoolWeightGrams
	if weight <= 0 {
		weight = defaultSpoolWeightGrams
	}

	m := &domain.Material{
		ID:               uuid.New(),
		Type:             mType,
		Subtype:          draft.Subtype,
		Brand:            draft.Brand,
		Colour:           draft.Colour,
		SpoolWeightGrams: weight,
		Price:            draft.Price,
	}

	log.Printf("inventoryService.CreateMaterial: creating %s %s (brand=%q colour=%q)",
		m.Type, m.Subtype, m.Brand, m.Colour)

	if err := s.materialRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating material: %w", err)
	}
	return m, nil
}

func (s *inventoryService) GetMaterial(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	return s.materialRepo.GetByID(ctx, id)
}

func (s *inventoryService) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	return s.materialRepo.List(ctx)
}

func (s *inventoryService) UpdateMaterial(ctx context.Context, id uuid.UUID, draft domain.MaterialDraft) (*domain.Material, error) {
	if strings.TrimSpace(draft.Subtype) == "" {
		return nil, domain.ErrSubtypeRequired
	}
	if draft.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}

	m, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Subtype = draft.Subtype
	m.Brand = draft.Brand
	m.Colour = draft.Colour
	m.Price = draft.Price
	if draft.Type != "" {
		m.Type = draft.Type
	}
	if draft.SpoolWeightGrams > 0 {
		m.SpoolWeightGrams = draft.SpoolWeightGrams
	}

	if err := s.materialRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("updating material: %w", err)
	}
	return m, nil
}

func (s *inventoryService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	return s.materialRepo.Delete(ctx, id)
}

func (s *inventoryService) CreateConsumable(ctx context.Context, draft domain.ConsumableDraft) (*domain.Consumable, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, domain.ErrNameRequired
	}

	unitCost, err := parseUnitCost(draft.UnitCost)
	if err != nil {
		return nil, err
	}

	category := draft.Category
	if category == "" {
		category = domain.ConsumableCategoryOther
	}

	c := &domain.Consumable{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(draft.Name),
		Category: category,
		UnitCost: unitCost,
	}

	log.Printf("inventoryService.CreateConsumable: creating %q (category=%s)", c.Name, c.Category)

	if err := s.consumableRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating consumable: %w", err)
	}
	return c, nil
}

func (s *inventoryService) GetConsumable(ctx context.Context, id uuid.UUID) (*domain.Consumable, error) {
	return s.consumableRepo.GetByID(ctx, id)
}

func (s *inventoryService) ListConsumables(ctx context.Context) ([]domain.Consumable, error) {
	return s.consumableRepo.List(ctx)
}

func (s *inventoryService) UpdateConsumable(ctx context.Context, id uuid.UUID, draft domain.ConsumableDraft) (*domain.Consumable, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	unitCost, err := parseUnitCost(draft.UnitCost)
	if err != nil {
		return nil, err
	}

	c, err := s.consumableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(draft.Name)
	c.UnitCost = unitCost
	if draft.Category != "" {
		c.Category = draft.Category
	}

	if err := s.consumableRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating consumable: %w", err)
	}
	return c, nil
}

func (s *inventoryService) DeleteConsumable(ctx context.Context, id uuid.UUID) error {
	return s.consumableRepo.Delete(ctx, id)
}

func (s *inventoryService) Snapshot(ctx context.Context) (domain.InventorySnapshot, error) {
	materials, err := s.materialRepo.List(ctx)
	if err != nil {
		return domain.InventorySnapshot{}, fmt.Errorf("loading materials: %w", err)
	}
	consumables, err := s.consumableRepo.List(ctx)
	if err != nil {
		return domain.InventorySnapshot{}, fmt.Errorf("loading consumables: %w", err)
	}
	return domain.InventorySnapshot{Materials: materials, Consumables: consumables}, nil
}

// parseUnitCost parses the draft's unit cost text. Empty text means no cost.
func parseUnitCost(text string) (decimal.NullDecimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}, domain.ErrInvalidUnitCost
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, domain.ErrNegativePrice
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
