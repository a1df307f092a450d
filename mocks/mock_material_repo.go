package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"printstock/internal/domain"
)

// MockMaterialRepo is a mock implementation of port.MaterialRepository.
type MockMaterialRepo struct {
	mock.Mock
}

func (m *MockMaterialRepo) Create(ctx context.Context, mat *domain.Material) error {
	args := m.Called(ctx, mat)
	return args.Error(0)
}

func (m *MockMaterialRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockMaterialRepo) List(ctx context.Context) ([]domain.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Material), args.Error(1)
}

func (m *MockMaterialRepo) Update(ctx context.Context, mat *domain.Material) error {
	args := m.Called(ctx, mat)
	return args.Error(0)
}

func (m *MockMaterialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
