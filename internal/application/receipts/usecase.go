package receipts

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/pkg/nit"
)

// UseCase genera comprobantes PDF de ventas y compras registradas.
type UseCase struct {
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	business  Business
	generator ReceiptPDFGenerator
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	business Business,
	generator ReceiptPDFGenerator,
) *UseCase {
	return &UseCase{sales: sales, purchases: purchases, business: business, generator: generator}
}

// SaleReceipt devuelve el PDF de la venta y el nombre de archivo sugerido.
// domain.ErrNotFound si la venta no existe.
func (uc *UseCase) SaleReceipt(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	s, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if s == nil {
		return nil, "", domain.ErrNotFound
	}
	r := &Receipt{
		Title:             "COMPROBANTE DE VENTA",
		Number:            shortID(s.ID),
		Fecha:             s.Fecha,
		Business:          uc.business,
		CounterpartyLabel: "CLIENTE",
		CounterpartyName:  s.ClienteNombre,
		DocumentLabel:     "C.C.",
		Document:          s.ClienteCedula,
		SellerEmail:       s.VendedorEmail,
		Items:             s.Items,
		Total:             s.Total,
		TransactionID:     s.TransaccionID,
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%s.pdf", r.Number), nil
}

// PurchaseReceipt devuelve el PDF de la compra y el nombre de archivo sugerido.
func (uc *UseCase) PurchaseReceipt(ctx context.Context, purchaseID string) (pdfBytes []byte, filename string, err error) {
	p, err := uc.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener compra: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	r := &Receipt{
		Title:             "COMPROBANTE DE COMPRA",
		Number:            shortID(p.ID),
		Fecha:             p.Fecha,
		Business:          uc.business,
		CounterpartyLabel: "PROVEEDOR",
		CounterpartyName:  p.ProveedorNombre,
		DocumentLabel:     "NIT",
		Document:          nit.Format(p.ProveedorNit),
		PaymentMethod:     p.MedioDePago,
		Items:             p.Items,
		Total:             p.Total,
		TransactionID:     p.TransaccionID,
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("compra_%s.pdf", r.Number), nil
}

// shortID primeros 8 caracteres del id, en mayúscula.
func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
