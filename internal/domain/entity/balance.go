package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceID identificador de la única fila de saldo.
const BalanceID = "saldo"

// Balance saldo en caja (singleton). Debe existir antes de registrar compras o ventas.
type Balance struct {
	Monto     decimal.Decimal
	UpdatedAt time.Time
}
