package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"printstock/internal/domain"
)

// MockPurchaseOrderRepo is a mock implementation of port.PurchaseOrderRepository.
type MockPurchaseOrderRepo struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepo) List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Int(1), args.Error(2)
}
