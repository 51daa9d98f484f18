package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

// BalanceRepository puerto del saldo en caja. Get y GetForUpdate devuelven (nil, nil) si no se ha inicializado.
type BalanceRepository interface {
	Get(ctx context.Context) (*entity.Balance, error)
	GetForUpdate(ctx context.Context) (*entity.Balance, error)
	Update(ctx context.Context, monto decimal.Decimal) error
	// Initialize crea el saldo; domain.ErrConflict si ya existe.
	Initialize(ctx context.Context, monto decimal.Decimal) error
}
