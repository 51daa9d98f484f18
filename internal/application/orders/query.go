package orders

import (
	"context"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

// QueryUseCase consultas de ventas y compras registradas.
type QueryUseCase struct {
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(sales repository.SaleRepository, purchases repository.PurchaseRepository) *QueryUseCase {
	return &QueryUseCase{sales: sales, purchases: purchases}
}

func (uc *QueryUseCase) ListSales(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.sales.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSaleResponse(s))
	}
	return out, nil
}

func (uc *QueryUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToSaleResponse(s)
	return &resp, nil
}

func (uc *QueryUseCase) ListPurchases(ctx context.Context, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	page.DefaultPage()
	list, err := uc.purchases.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToPurchaseResponse(p))
	}
	return out, nil
}

func (uc *QueryUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToPurchaseResponse(p)
	return &resp, nil
}
