package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción contable.
const (
	TransactionTypeIngreso = "ingreso" // venta
	TransactionTypeEgreso  = "egreso"  // compra
)

// LedgerTransaction registro inmutable de un movimiento de caja; uno por venta o compra confirmada.
type LedgerTransaction struct {
	ID       string
	Fecha    time.Time
	Tipo     string
	Monto    decimal.Decimal
	Concepto string
}
