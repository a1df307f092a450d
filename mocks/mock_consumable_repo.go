package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"printstock/internal/domain"
)

// MockConsumableRepo is a mock implementation of port.ConsumableRepository.
type MockConsumableRepo struct {
	mock.Mock
}

func (m *MockConsumableRepo) Create(ctx context.Context, c *domain.Consumable) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsumableRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Consumable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumable), args.Error(1)
}

func (m *MockConsumableRepo) List(ctx context.Context) ([]domain.Consumable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Consumable), args.Error(1)
}

func (m *MockConsumableRepo) Update(ctx context.Context, c *domain.Consumable) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsumableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
