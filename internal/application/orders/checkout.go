package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/ledger"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/cart"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

// WarningPartial aviso devuelto cuando la transacción se confirmó pero la orden no se guardó.
const WarningPartial = "orden registrada parcialmente"

// CheckoutUseCase registra ventas y compras: arma el carrito, confirma en el libro y escribe la orden.
type CheckoutUseCase struct {
	engine      *ledger.Engine
	writer      *Writer
	invRepo     repository.InventoryRepository
	balRepo     repository.BalanceRepository
	clientes    repository.ClienteRepository
	proveedores repository.ProveedorRepository
	log         *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso inyectando sus dependencias.
func NewCheckoutUseCase(
	engine *ledger.Engine,
	writer *Writer,
	invRepo repository.InventoryRepository,
	balRepo repository.BalanceRepository,
	clientes repository.ClienteRepository,
	proveedores repository.ProveedorRepository,
	log *logger.Logger,
) *CheckoutUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CheckoutUseCase{
		engine:      engine,
		writer:      writer,
		invRepo:     invRepo,
		balRepo:     balRepo,
		clientes:    clientes,
		proveedores: proveedores,
		log:         log.Component("checkout"),
	}
}

// RegisterSale registra una venta.
//
// Retorna:
//   - (resp, nil)                        venta confirmada y guardada.
//   - (resp, *domain.SecondaryWriteError) transacción confirmada, documento de venta no guardado.
//   - (nil, err)                         nada se escribió.
func (uc *CheckoutUseCase) RegisterSale(ctx context.Context, seller Seller, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	cliente, err := uc.clientes.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("venta: obtener cliente: %w", err)
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClienteID)
	}

	c, err := uc.buildCart(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	res, err := uc.engine.Finalize(ctx, ledger.FinalizeInput{
		Kind:         ledger.KindSale,
		Counterparty: ledger.Counterparty{ID: cliente.ID, Nombre: cliente.Nombre, Documento: cliente.Cedula},
		Cart:         c,
	})
	if err != nil {
		return nil, err
	}

	sale, err := uc.writer.RecordSale(ctx, SaleRecord{Result: res, Cliente: cliente, Seller: seller})
	resp := dto.ToSaleResponse(sale)
	if err != nil {
		if errors.Is(err, domain.ErrSecondaryWrite) {
			resp.ID = ""
			resp.Warning = WarningPartial
		}
		return &resp, err
	}
	return &resp, nil
}

// RegisterPurchase registra una compra. El saldo leído aquí solo sirve para rechazar rápido;
// la validación definitiva ocurre dentro de la transacción.
func (uc *CheckoutUseCase) RegisterPurchase(ctx context.Context, seller Seller, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	prov, err := uc.proveedores.GetByID(ctx, in.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("compra: obtener proveedor: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.ProveedorID)
	}

	c, err := uc.buildCart(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	fi := ledger.FinalizeInput{
		Kind:          ledger.KindPurchase,
		Counterparty:  ledger.Counterparty{ID: prov.ID, Nombre: prov.Nombre, Documento: prov.NIT},
		Cart:          c,
		PaymentMethod: in.MedioDePago,
		Date:          in.Fecha.UTC(),
	}
	// Lectura previa solo orientativa: si falla, decide la verificación dentro de la transacción.
	bal, err := uc.balRepo.Get(ctx)
	switch {
	case err != nil:
		uc.log.Debug().Err(err).Str("proveedor_id", prov.ID).Msg("saldo previo no disponible, se omite el prechequeo")
	case bal != nil:
		snap := bal.Monto
		fi.BalanceSnapshot = &snap
	}

	res, err := uc.engine.Finalize(ctx, fi)
	if err != nil {
		return nil, err
	}

	p, err := uc.writer.RecordPurchase(ctx, PurchaseRecord{
		Result:      res,
		Proveedor:   prov,
		MedioDePago: in.MedioDePago,
		Fecha:       fi.Date,
	})
	resp := dto.ToPurchaseResponse(p)
	if err != nil {
		if errors.Is(err, domain.ErrSecondaryWrite) {
			resp.ID = ""
			resp.Warning = WarningPartial
		}
		return &resp, err
	}
	return &resp, nil
}

// buildCart arma el carrito con una foto del inventario; grados repetidos se fusionan.
func (uc *CheckoutUseCase) buildCart(ctx context.Context, lines []dto.OrderItemRequest) (*cart.Cart, error) {
	items, err := uc.invRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener inventario: %w", err)
	}
	catalog := cart.CatalogFromItems(items)
	c := cart.New()
	for i, l := range lines {
		if err := c.AddItem(entity.Grade(l.ID), l.Cantidad, catalog); err != nil {
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				return nil, domain.NewValidationError(fmt.Sprintf("items[%d].%s", i, vErr.Field), vErr.Message)
			}
			return nil, err
		}
	}
	return c, nil
}
