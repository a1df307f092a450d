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

type materialRepo struct {
	db *sqlx.DB
}

// NewMaterialRepo creates a new PostgreSQL-backed MaterialRepository.
func NewMaterialRepo(db *sqlx.DB) port.MaterialRepository {
	return &materialRepo{db: db}
}

func (r *materialRepo) Create(ctx context.Context, m *domain.Material) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO materials
		(id, material_type, subtype, brand, colour, spool_weight_grams, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Type, m.Subtype, m.Brand, m.Colour, m.SpoolWeightGrams, m.Price,
		m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("materialRepo.Create: %w", err)
	}
	return nil
}

func (r *materialRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	var m domain.Material
	err := r.db.GetContext(ctx, &m, "SELECT * FROM materials WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("materialRepo.GetByID: %w", err)
	}
	return &m, nil
}

func (r *materialRepo) List(ctx context.Context) ([]domain.Material, error) {
	var materials []domain.Material
	err := r.db.SelectContext(ctx, &materials,
		"SELECT * FROM materials ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("materialRepo.List: %w", err)
	}
	return materials, nil
}

func (r *materialRepo) Update(ctx context.Context, m *domain.Material) error {
	m.UpdatedAt = time.Now().UTC()

	query := `UPDATE materials SET
		material_type = $1, subtype = $2, brand = $3, colour = $4,
		spool_weight_grams = $5, price = $6, updated_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		m.Type, m.Subtype, m.Brand, m.Colour, m.SpoolWeightGrams, m.Price,
		m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("materialRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *materialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM materials WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("materialRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
