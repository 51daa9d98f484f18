package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si la transacción choca con otra concurrente, la implementación reintenta fn completa;
// al agotar los reintentos devuelve *domain.ConcurrencyConflictError.
// Los errores que devuelve fn abortan la transacción sin escrituras parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		balRepo repository.BalanceRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// Metrics registra el resultado de cada Finalize.
type Metrics interface {
	ObserveFinalize(kind string, result string, attempts int, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveFinalize(string, string, int, time.Duration) {}
