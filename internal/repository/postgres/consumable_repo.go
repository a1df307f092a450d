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

type consumableRepo struct {
	db *sqlx.DB
}

// NewConsumableRepo creates a new PostgreSQL-backed ConsumableRepository.
func NewConsumableRepo(db *sqlx.DB) port.ConsumableRepository {
	return &consumableRepo{db: db}
}

func (r *consumableRepo) Create(ctx context.Context, c *domain.Consumable) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO consumables
		(id, name, category, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Category, c.UnitCost, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("consumableRepo.Create: %w", err)
	}
	return nil
}

func (r *consumableRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Consumable, error) {
	var c domain.Consumable
	err := r.db.GetContext(ctx, &c, "SELECT * FROM consumables WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("consumableRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *consumableRepo) List(ctx context.Context) ([]domain.Consumable, error) {
	var consumables []domain.Consumable
	err := r.db.SelectContext(ctx, &consumables,
		"SELECT * FROM consumables ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("consumableRepo.List: %w", err)
	}
	return consumables, nil
}

func (r *consumableRepo) Update(ctx context.Context, c *domain.Consumable) error {
	c.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		"UPDATE consumables SET name = $1, category = $2, unit_cost = $3, updated_at = $4 WHERE id = $5",
		c.Name, c.Category, c.UnitCost, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("consumableRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *consumableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM consumables WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("consumableRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
