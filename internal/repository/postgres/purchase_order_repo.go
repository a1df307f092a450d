package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"printstock/internal/domain"
	"printstock/internal/port"
)

type purchaseOrderRepo struct {
	db *sqlx.DB
}

// NewPurchaseOrderRepo creates a new PostgreSQL-backed PurchaseOrderRepository.
func NewPurchaseOrderRepo(db *sqlx.DB) port.PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	now := time.Now().UTC()
	po.CreatedAt = now
	po.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchase_orders
		 (id, supplier, invoice_number, expected_delivery, notes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		po.ID, po.Supplier, po.InvoiceNumber, po.ExpectedDelivery, po.Notes,
		po.Status, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create: %w", err)
	}

	for _, line := range po.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO purchase_order_lines
			 (id, purchase_order_id, position, kind, material_id, consumable_id, description, quantity, unit_cost)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID, po.ID, line.Position, line.Kind, line.MaterialID,
			line.ConsumableID, line.Description, line.Quantity, line.UnitCost)
		if err != nil {
			return fmt.Errorf("purchaseOrderRepo.Create line %d: %w", line.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("purchaseOrderRepo.Create commit: %w", err)
	}
	return nil
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := r.db.GetContext(ctx, &po, "SELECT * FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &po.Lines,
		"SELECT * FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID lines: %w", err)
	}
	return &po, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchase_orders"); err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List count: %w", err)
	}

	var orders []domain.PurchaseOrder
	err := r.db.SelectContext(ctx, &orders,
		"SELECT * FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List: %w", err)
	}
	return orders, total, nil
}
