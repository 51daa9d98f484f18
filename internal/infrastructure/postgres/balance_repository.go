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

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldo en caja; una sola fila con id 'saldo'.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

func (r *BalanceRepo) get(ctx context.Context, query string) (*entity.Balance, error) {
	var b entity.Balance
	if err := r.q.QueryRow(ctx, query, entity.BalanceID).Scan(&b.Monto, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get saldo: %w", err)
	}
	return &b, nil
}

// Get devuelve el saldo; (nil, nil) si no se ha inicializado.
func (r *BalanceRepo) Get(ctx context.Context) (*entity.Balance, error) {
	return r.get(ctx, `SELECT monto, updated_at FROM saldo WHERE id = $1`)
}

// GetForUpdate lee el saldo y bloquea la fila.
func (r *BalanceRepo) GetForUpdate(ctx context.Context) (*entity.Balance, error) {
	return r.get(ctx, `SELECT monto, updated_at FROM saldo WHERE id = $1 FOR UPDATE`)
}

func (r *BalanceRepo) Update(ctx context.Context, monto decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE saldo SET monto = $2, updated_at = now() WHERE id = $1`, entity.BalanceID, monto)
	if err != nil {
		return fmt.Errorf("update saldo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Initialize crea la fila de saldo; domain.ErrConflict si ya existía.
func (r *BalanceRepo) Initialize(ctx context.Context, monto decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`INSERT INTO saldo (id, monto, updated_at) VALUES ($1, $2, now()) ON CONFLICT (id) DO NOTHING`,
		entity.BalanceID, monto)
	if err != nil {
		return fmt.Errorf("inicializar saldo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
