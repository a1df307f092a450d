package port

import (
	"context"

	"github.com/google/uuid"

	"printstock/internal/domain"
)

// MaterialRepository persists printing materials.
type MaterialRepository interface {
	Create(ctx context.Context, m *domain.Material) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error)
	List(ctx context.Context) ([]domain.Material, error)
	Update(ctx context.Context, m *domain.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConsumableRepository persists consumable inventory records.
type ConsumableRepository interface {
	Create(ctx context.Context, c *domain.Consumable) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Consumable, error)
	List(ctx context.Context) ([]domain.Consumable, error)
	Update(ctx context.Context, c *domain.Consumable) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseOrderRepository persists purchase orders with their lines.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error)
}
