package receipts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

// Business datos del negocio que emite el comprobante.
type Business struct {
	Name    string
	NIT     string
	Address string
	Phone   string
}

// Receipt comprobante listo para renderizar, común a ventas y compras.
type Receipt struct {
	Title             string // "COMPROBANTE DE VENTA" | "COMPROBANTE DE COMPRA"
	Number            string
	Fecha             time.Time
	Business          Business
	CounterpartyLabel string // "CLIENTE" | "PROVEEDOR"
	CounterpartyName  string
	DocumentLabel     string // "C.C." | "NIT"
	Document          string
	PaymentMethod     string
	SellerEmail       string
	Items             []entity.OrderLineItem
	Total             decimal.Decimal
	TransactionID     string
}

// ReceiptPDFGenerator genera la representación PDF de un comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, r *Receipt) ([]byte, error)
}
