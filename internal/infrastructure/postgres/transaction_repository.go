package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro de transacciones (solo inserción).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.LedgerTransaction) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO transacciones (id, fecha, tipo, monto, concepto) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Fecha, t.Tipo, t.Monto, t.Concepto)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaccion: %w", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.LedgerTransaction, error) {
	var t entity.LedgerTransaction
	err := r.q.QueryRow(ctx,
		`SELECT id, fecha, tipo, monto, concepto FROM transacciones WHERE id = $1`, id,
	).Scan(&t.ID, &t.Fecha, &t.Tipo, &t.Monto, &t.Concepto)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaccion: %w", err)
	}
	return &t, nil
}

// List de la más reciente a la más antigua.
func (r *TransactionRepo) List(ctx context.Context, limit, offset int) ([]*entity.LedgerTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, fecha, tipo, monto, concepto FROM transacciones
		ORDER BY fecha DESC, id LIMIT $1 OFFSET $2`, pageLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list transacciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerTransaction
	for rows.Next() {
		var t entity.LedgerTransaction
		if err := rows.Scan(&t.ID, &t.Fecha, &t.Tipo, &t.Monto, &t.Concepto); err != nil {
			return nil, fmt.Errorf("scan transaccion: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// pageLimit traduce limit <= 0 (sin límite) a NULL para LIMIT.
func pageLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
