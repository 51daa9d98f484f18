package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/ledger"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

// Seller usuario autenticado que registra la orden.
type Seller struct {
	UserID string
	Email  string
}

// SaleRecord datos para escribir la venta de una transacción ya confirmada.
type SaleRecord struct {
	Result  *ledger.Result
	Cliente *entity.Cliente
	Seller  Seller
}

// PurchaseRecord datos para escribir la compra de una transacción ya confirmada.
type PurchaseRecord struct {
	Result      *ledger.Result
	Proveedor   *entity.Proveedor
	MedioDePago string
	Fecha       time.Time
}

// Writer escribe el documento denormalizado de la orden después del paso atómico.
// Un fallo aquí no revierte la transacción contable.
type Writer struct {
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	log       *logger.Logger
}

// NewWriter construye el escritor. log puede ser nil.
func NewWriter(sales repository.SaleRepository, purchases repository.PurchaseRepository, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Nop()
	}
	return &Writer{sales: sales, purchases: purchases, log: log.Component("orders")}
}

// RecordSale construye y guarda la venta. Si el repositorio falla devuelve la venta construida
// junto con un *domain.SecondaryWriteError.
func (w *Writer) RecordSale(ctx context.Context, rec SaleRecord) (*entity.Sale, error) {
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ClienteID:     rec.Cliente.ID,
		ClienteNombre: rec.Cliente.Nombre,
		ClienteCedula: rec.Cliente.Cedula,
		Items:         copyLines(rec.Result.Items),
		Total:         rec.Result.Total,
		VendedorID:    rec.Seller.UserID,
		VendedorEmail: rec.Seller.Email,
		Fecha:         rec.Result.Fecha,
		TransaccionID: rec.Result.TransactionID,
	}
	if err := w.sales.Create(ctx, sale); err != nil {
		w.log.Error().Err(err).Str("transaccion_id", sale.TransaccionID).Msg("no se pudo guardar la venta")
		return sale, &domain.SecondaryWriteError{TransactionID: sale.TransaccionID, Kind: string(ledger.KindSale), Err: err}
	}
	return sale, nil
}

// RecordPurchase construye y guarda la compra.
func (w *Writer) RecordPurchase(ctx context.Context, rec PurchaseRecord) (*entity.Purchase, error) {
	p := &entity.Purchase{
		ID:              uuid.New().String(),
		ProveedorID:     rec.Proveedor.ID,
		ProveedorNombre: rec.Proveedor.Nombre,
		ProveedorNit:    rec.Proveedor.NIT,
		Items:           copyLines(rec.Result.Items),
		Total:           rec.Result.Total,
		MedioDePago:     rec.MedioDePago,
		Fecha:           rec.Fecha,
		CreadoEn:        time.Now().UTC(),
		TransaccionID:   rec.Result.TransactionID,
	}
	if err := w.purchases.Create(ctx, p); err != nil {
		w.log.Error().Err(err).Str("transaccion_id", p.TransaccionID).Msg("no se pudo guardar la compra")
		return p, &domain.SecondaryWriteError{TransactionID: p.TransaccionID, Kind: string(ledger.KindPurchase), Err: err}
	}
	return p, nil
}

func copyLines(in []entity.OrderLineItem) []entity.OrderLineItem {
	out := make([]entity.OrderLineItem, len(in))
	copy(out, in)
	return out
}
