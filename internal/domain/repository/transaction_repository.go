package repository

import (
	"context"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

// TransactionRepository puerto del libro de transacciones (solo inserción).
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.LedgerTransaction) error
	GetByID(ctx context.Context, id string) (*entity.LedgerTransaction, error)
	// List ordena de la más reciente a la más antigua.
	List(ctx context.Context, limit, offset int) ([]*entity.LedgerTransaction, error)
}
