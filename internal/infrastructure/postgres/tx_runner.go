package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/ledger"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL SERIALIZABLE.
// Ante fallas de serialización (40001) o deadlock (40P01) repite el callback completo.
type TxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
	log        *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int, log *logger.Logger) *TxRunner {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TxRunner{pool: pool, maxRetries: maxRetries, log: log.Component("postgres.tx")}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	balRepo repository.BalanceRepository,
	txRepo repository.TransactionRepository,
) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
		r.log.Debug().Err(err).Int("intento", attempt).Msg("conflicto de serialización, reintentando")
		if attempt < r.maxRetries {
			if err := backoff(ctx, attempt); err != nil {
				return err
			}
		}
	}
	return &domain.ConcurrencyConflictError{Attempts: r.maxRetries, Err: lastErr}
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	balRepo repository.BalanceRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewBalanceRepository(tx), NewTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
