package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, nombre, precio, stock, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var id string
	if err := row.Scan(&id, &it.Nombre, &it.Precio, &it.Stock, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.ID = entity.Grade(id)
	return &it, nil
}

// List devuelve los grados ordenados por id.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventario ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetByID obtiene un grado; (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, grade entity.Grade) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventario WHERE id = $1`, string(grade)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el grado y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, grade entity.Grade) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventario WHERE id = $1 FOR UPDATE`, string(grade)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario for update: %w", err)
	}
	return it, nil
}

// UpdateStock fija el stock del grado. El CHECK de la tabla impide stock negativo.
func (r *InventoryRepo) UpdateStock(ctx context.Context, grade entity.Grade, stock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventario SET stock = $2, updated_at = now() WHERE id = $1`, string(grade), stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePrice cambia solo el precio de catálogo.
func (r *InventoryRepo) UpdatePrice(ctx context.Context, grade entity.Grade, precio decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventario SET precio = $2, updated_at = now() WHERE id = $1`, string(grade), precio)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update precio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o reemplaza un grado (usado por la siembra inicial).
func (r *InventoryRepo) Upsert(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventario (id, nombre, precio, stock, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id)
		DO UPDATE SET nombre = EXCLUDED.nombre, precio = EXCLUDED.precio, stock = EXCLUDED.stock, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, string(item.ID), item.Nombre, item.Precio, item.Stock); err != nil {
		return fmt.Errorf("upsert inventario: %w", err)
	}
	return nil
}
