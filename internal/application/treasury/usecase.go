package treasury

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

// UseCase saldo en caja y libro de transacciones.
type UseCase struct {
	balRepo repository.BalanceRepository
	txRepo  repository.TransactionRepository
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(balRepo repository.BalanceRepository, txRepo repository.TransactionRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{balRepo: balRepo, txRepo: txRepo, log: log.Component("treasury")}
}

func (uc *UseCase) GetBalance(ctx context.Context) (*dto.BalanceResponse, error) {
	b, err := uc.balRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("saldo: obtener: %w", err)
	}
	if b == nil {
		return nil, &domain.PreconditionError{Resource: entity.BalanceID, Message: "El saldo no ha sido inicializado."}
	}
	return &dto.BalanceResponse{Monto: b.Monto, UpdatedAt: b.UpdatedAt}, nil
}

// ListTransactions de la más reciente a la más antigua.
func (uc *UseCase) ListTransactions(ctx context.Context, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	page.DefaultPage()
	list, err := uc.txRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("transacciones: listar: %w", err)
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ToTransactionResponse(t))
	}
	return out, nil
}

// InitializeBalance crea el saldo inicial. domain.ErrConflict si ya existe.
func (uc *UseCase) InitializeBalance(ctx context.Context, in dto.InitializeBalanceRequest) (*dto.BalanceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.balRepo.Initialize(ctx, in.Monto); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: el saldo ya fue inicializado", domain.ErrConflict)
		}
		return nil, fmt.Errorf("saldo: inicializar: %w", err)
	}
	uc.log.Info().Str("monto", in.Monto.String()).Msg("saldo inicializado")
	return uc.GetBalance(ctx)
}
