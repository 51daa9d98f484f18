package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea pedida: grado y cantidad. El precio sale del inventario.
type OrderItemRequest struct {
	ID       string `json:"id" validate:"required,oneof=A AA B"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0,lte=100000"`
}

// RegisterSaleRequest body para POST /api/ventas.
type RegisterSaleRequest struct {
	ClienteID string             `json:"cliente_id" validate:"required"`
	Items     []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// RegisterPurchaseRequest body para POST /api/compras.
type RegisterPurchaseRequest struct {
	ProveedorID string             `json:"proveedor_id" validate:"required"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	MedioDePago string             `json:"medio_de_pago" validate:"required,oneof=Efectivo Transferencia Cheque Otro"`
	Fecha       time.Time          `json:"fecha" validate:"required"`
}

// OrderItemResponse línea de una venta o compra registrada.
type OrderItemResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada. Warning se llena cuando la transacción se confirmó pero el documento de venta no se pudo guardar.
type SaleResponse struct {
	ID            string              `json:"id,omitempty"`
	ClienteID     string              `json:"cliente_id"`
	ClienteNombre string              `json:"cliente_nombre"`
	ClienteCedula string              `json:"cliente_cedula"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	VendedorEmail string              `json:"vendedor_email,omitempty"`
	Fecha         time.Time           `json:"fecha"`
	TransaccionID string              `json:"transaccion_id"`
	Warning       string              `json:"warning,omitempty"`
}

// PurchaseResponse compra registrada.
type PurchaseResponse struct {
	ID              string              `json:"id,omitempty"`
	ProveedorID     string              `json:"proveedor_id"`
	ProveedorNombre string              `json:"proveedor_nombre"`
	ProveedorNit    string              `json:"proveedor_nit"`
	Items           []OrderItemResponse `json:"items"`
	Total           decimal.Decimal     `json:"total"`
	MedioDePago     string              `json:"medio_de_pago"`
	Fecha           time.Time           `json:"fecha"`
	CreadoEn        time.Time           `json:"creado_en"`
	TransaccionID   string              `json:"transaccion_id"`
	Warning         string              `json:"warning,omitempty"`
}
