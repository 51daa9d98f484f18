package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrPrecondition        = errors.New("precondición no cumplida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, intente de nuevo")
	ErrSecondaryWrite      = errors.New("orden registrada parcialmente")
)

// ValidationError entrada de usuario mal formada; se detecta antes de tocar el almacenamiento.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PreconditionError falta un recurso que debe existir antes de operar (saldo, ítem de inventario).
type PreconditionError struct {
	Resource string
	Message  string
}

func (e *PreconditionError) Error() string { return e.Message }

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

// InsufficientStockError una línea de venta pide más de lo disponible.
type InsufficientStockError struct {
	Grade     string
	Nombre    string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	name := e.Nombre
	if name == "" {
		name = e.Grade
	}
	return fmt.Sprintf("Stock insuficiente para %s. Disponible: %d, solicitado: %d", name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InsufficientBalanceError el total de una compra supera el saldo en caja.
// Advisory indica que se detectó con una lectura previa (posiblemente desactualizada) y no dentro de la transacción.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
	Advisory  bool
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Saldo insuficiente. Disponible: %s, requerido: %s",
		e.Available.StringFixed(0), e.Required.StringFixed(0))
}

func (e *InsufficientBalanceError) Is(target error) bool { return target == ErrInsufficientBalance }

// ConcurrencyConflictError se agotaron los reintentos de la transacción atómica.
type ConcurrencyConflictError struct {
	Attempts int
	Err      error
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("conflicto de concurrencia tras %d intentos, intente de nuevo", e.Attempts)
}

func (e *ConcurrencyConflictError) Is(target error) bool { return target == ErrConcurrencyConflict }

func (e *ConcurrencyConflictError) Unwrap() error { return e.Err }

// SecondaryWriteError falló la escritura de la orden después de confirmar la transacción contable.
// El estado financiero ya es consistente; TransactionID apunta a la transacción confirmada.
type SecondaryWriteError struct {
	TransactionID string
	Kind          string
	Err           error
}

func (e *SecondaryWriteError) Error() string {
	return fmt.Sprintf("%s registrada parcialmente (transacción %s): %v", e.Kind, e.TransactionID, e.Err)
}

func (e *SecondaryWriteError) Is(target error) bool { return target == ErrSecondaryWrite }

func (e *SecondaryWriteError) Unwrap() error { return e.Err }
