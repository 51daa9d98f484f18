package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse saldo en caja.
type BalanceResponse struct {
	Monto     decimal.Decimal `json:"monto"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InitializeBalanceRequest saldo inicial (solo si aún no existe).
type InitializeBalanceRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"gte=0"`
}

// TransactionResponse movimiento del libro de caja.
type TransactionResponse struct {
	ID       string          `json:"id"`
	Fecha    time.Time       `json:"fecha"`
	Tipo     string          `json:"tipo"`
	Monto    decimal.Decimal `json:"monto"`
	Concepto string          `json:"concepto"`
}
