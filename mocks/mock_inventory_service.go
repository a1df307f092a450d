package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"printstock/internal/domain"
)

// MockInventoryService is a mock implementation of service.InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CreateMaterial(ctx context.Context, draft domain.MaterialDraft) (*domain.Material, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockInventoryService) GetMaterial(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockInventoryService) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Material), args.Error(1)
}

func (m *MockInventoryService) UpdateMaterial(ctx context.Context, id uuid.UUID, draft domain.MaterialDraft) (*domain.Material, error) {
	args := m.Called(ctx, id, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockInventoryService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryService) CreateConsumable(ctx context.Context, draft domain.ConsumableDraft) (*domain.Consumable, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumable), args.Error(1)
}

func (m *MockInventoryService) GetConsumable(ctx context.Context, id uuid.UUID) (*domain.Consumable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumable), args.Error(1)
}

func (m *MockInventoryService) ListConsumables(ctx context.Context) ([]domain.Consumable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Consumable), args.Error(1)
}

func (m *MockInventoryService) UpdateConsumable(ctx context.Context, id uuid.UUID, draft domain.ConsumableDraft) (*domain.Consumable, error) {
	args := m.Called(ctx, id, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumable), args.Error(1)
}

func (m *MockInventoryService) DeleteConsumable(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryService) Snapshot(ctx context.Context) (domain.InventorySnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.InventorySnapshot), args.Error(1)
}
