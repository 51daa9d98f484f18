package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados en compras.
const (
	PaymentMethodEfectivo      = "Efectivo"
	PaymentMethodTransferencia = "Transferencia"
	PaymentMethodCheque        = "Cheque"
	PaymentMethodOtro          = "Otro"
)

// PaymentMethods lista los medios de pago válidos.
var PaymentMethods = []string{
	PaymentMethodEfectivo,
	PaymentMethodTransferencia,
	PaymentMethodCheque,
	PaymentMethodOtro,
}

// IsValidPaymentMethod indica si m es un medio de pago aceptado.
func IsValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// OrderLineItem línea de una orden: grado, cantidad y precio al momento de armar el carrito.
type OrderLineItem struct {
	GradeID        Grade           `json:"id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Sale venta denormalizada, escrita después de confirmar la transacción contable.
type Sale struct {
	ID            string
	ClienteID     string
	ClienteNombre string
	ClienteCedula string
	Items         []OrderLineItem
	Total         decimal.Decimal
	VendedorID    string
	VendedorEmail string
	Fecha         time.Time
	TransaccionID string
}

// Purchase compra denormalizada, escrita después de confirmar la transacción contable.
type Purchase struct {
	ID              string
	ProveedorID     string
	ProveedorNombre string
	ProveedorNit    string
	Items           []OrderLineItem
	Total           decimal.Decimal
	MedioDePago     string
	Fecha           time.Time // fecha elegida por el usuario
	CreadoEn        time.Time
	TransaccionID   string
}
