package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemResponse grado de huevo con precio y stock.
type InventoryItemResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	Stock     int             `json:"stock"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpdatePriceRequest body para PUT /api/inventario/:grade/precio.
type UpdatePriceRequest struct {
	Precio decimal.Decimal `json:"precio" validate:"gt=0"`
}
