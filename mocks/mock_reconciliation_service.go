package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"printstock/internal/domain"
	"printstock/internal/service"
	"printstock/internal/session"
)

// MockReconciliationService is a mock implementation of service.ReconciliationService.
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Start(ctx context.Context, input service.StartInput) (*service.SessionView, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockReconciliationService) Get(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockReconciliationService) UpdateDecision(ctx context.Context, id uuid.UUID, itemIndex int, patch domain.DecisionPatch) (*domain.Decision, error) {
	args := m.Called(ctx, id, itemIndex, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Decision), args.Error(1)
}

func (m *MockReconciliationService) Commit(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReconciliationService) Progress(ctx context.Context, id uuid.UUID) (session.Progress, domain.SessionPhase, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.Progress), args.Get(1).(domain.SessionPhase), args.Error(2)
}

func (m *MockReconciliationService) Handoff(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockReconciliationService) ArchiveURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockReconciliationService) Abandon(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
