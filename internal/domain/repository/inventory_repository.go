package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

// InventoryRepository puerto de persistencia del inventario por grado.
// GetByID y GetForUpdate devuelven (nil, nil) si el grado no existe.
type InventoryRepository interface {
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	GetByID(ctx context.Context, grade entity.Grade) (*entity.InventoryItem, error)
	// GetForUpdate lee y bloquea la fila (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(ctx context.Context, grade entity.Grade) (*entity.InventoryItem, error)
	UpdateStock(ctx context.Context, grade entity.Grade, stock int) error
	UpdatePrice(ctx context.Context, grade entity.Grade, precio decimal.Decimal) error
	Upsert(ctx context.Context, item *entity.InventoryItem) error
}
