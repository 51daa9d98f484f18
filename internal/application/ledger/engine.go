package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/cart"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/inventory"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

// Kind tipo de operación que mueve inventario y caja.
type Kind string

const (
	KindSale     Kind = "venta"
	KindPurchase Kind = "compra"
)

// Etiquetas de resultado para métricas.
const (
	ResultOK                  = "ok"
	ResultValidation          = "validation"
	ResultPrecondition        = "precondition"
	ResultInsufficientStock   = "insufficient_stock"
	ResultInsufficientBalance = "insufficient_balance"
	ResultConflict            = "conflict"
	ResultError               = "error"
)

// Counterparty cliente (venta) o proveedor (compra) de la operación.
type Counterparty struct {
	ID        string
	Nombre    string
	Documento string // cédula o NIT
}

// FinalizeInput datos para confirmar un carrito.
type FinalizeInput struct {
	Kind          Kind
	Counterparty  Counterparty
	Cart          *cart.Cart
	PaymentMethod string    // solo compras
	Date          time.Time // solo compras; las ventas usan la hora de confirmación
	// BalanceSnapshot último saldo conocido por quien llama; solo se usa para rechazar compras rápido.
	BalanceSnapshot *decimal.Decimal
}

// Result transacción confirmada.
type Result struct {
	TransactionID string
	Tipo          string
	Total         decimal.Decimal
	Fecha         time.Time
	Items         []entity.OrderLineItem
	Attempts      int
}

// Engine aplica un carrito contra el inventario y el saldo en una sola transacción atómica
// y deja exactamente un registro en el libro de transacciones.
type Engine struct {
	txRunner TxRunner
	metrics  Metrics
	log      *logger.Logger
}

// NewEngine construye el motor. metrics y log pueden ser nil.
func NewEngine(txRunner TxRunner, metrics Metrics, log *logger.Logger) *Engine {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{txRunner: txRunner, metrics: metrics, log: log.Component("ledger")}
}

// Finalize valida la entrada, y en una transacción: lee saldo y stock de todas las líneas,
// valida, escribe stock y saldo e inserta la transacción contable.
// Si algo falla no queda ninguna escritura.
func (e *Engine) Finalize(ctx context.Context, in FinalizeInput) (*Result, error) {
	start := time.Now()

	if err := validateInput(in); err != nil {
		e.finish(in, nil, 0, start, err)
		return nil, err
	}

	lines := in.Cart.Items()
	total := in.Cart.Total()

	// Pre-chequeo con el saldo conocido por el llamador; la validación real es dentro de la tx.
	if in.Kind == KindPurchase && in.BalanceSnapshot != nil && total.GreaterThan(*in.BalanceSnapshot) {
		err := &domain.InsufficientBalanceError{Available: *in.BalanceSnapshot, Required: total, Advisory: true}
		e.finish(in, nil, 0, start, err)
		return nil, err
	}

	reqs := inventory.Aggregate(lines)
	txID := uuid.New().String()
	attempts := 0
	var record *entity.LedgerTransaction

	err := e.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		balRepo repository.BalanceRepository,
		txRepo repository.TransactionRepository,
	) error {
		attempts++
		rec, err := e.apply(ctx, invRepo, balRepo, txRepo, in, reqs, total, txID)
		if err != nil {
			return err
		}
		record = rec
		return nil
	})
	if err != nil {
		var conflict *domain.ConcurrencyConflictError
		if errors.As(err, &conflict) && conflict.Attempts > attempts {
			attempts = conflict.Attempts
		}
		e.finish(in, nil, attempts, start, err)
		return nil, err
	}

	res := &Result{
		TransactionID: record.ID,
		Tipo:          record.Tipo,
		Total:         record.Monto,
		Fecha:         record.Fecha,
		Items:         lines,
		Attempts:      attempts,
	}
	e.finish(in, res, attempts, start, nil)
	return res, nil
}

// apply es el paso atómico. Todas las lecturas ocurren antes de cualquier escritura.
func (e *Engine) apply(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	balRepo repository.BalanceRepository,
	txRepo repository.TransactionRepository,
	in FinalizeInput,
	reqs []inventory.Requirement,
	total decimal.Decimal,
	txID string,
) (*entity.LedgerTransaction, error) {
	bal, err := balRepo.GetForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return nil, &domain.PreconditionError{
			Resource: entity.BalanceID,
			Message:  fmt.Sprintf("Debe inicializar el saldo antes de registrar %ss.", in.Kind),
		}
	}

	// Bloquea las filas en orden de grado (Aggregate ya las ordena)
	items := make(map[entity.Grade]*entity.InventoryItem, len(reqs))
	for _, r := range reqs {
		it, err := invRepo.GetForUpdate(ctx, r.Grade)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, &domain.PreconditionError{
				Resource: "inventario/" + string(r.Grade),
				Message:  "Producto no encontrado en inventario: " + string(r.Grade),
			}
		}
		items[r.Grade] = it
	}

	var (
		newBalance decimal.Decimal
		tipo       string
		concepto   string
		fecha      time.Time
	)
	switch in.Kind {
	case KindSale:
		if err := inventory.CheckAvailability(items, reqs); err != nil {
			return nil, err
		}
		for _, r := range reqs {
			if err := invRepo.UpdateStock(ctx, r.Grade, items[r.Grade].Stock-r.Quantity); err != nil {
				return nil, err
			}
		}
		newBalance = bal.Monto.Add(total)
		tipo = entity.TransactionTypeIngreso
		concepto = "Venta a " + in.Counterparty.Nombre
		fecha = time.Now().UTC()
	case KindPurchase:
		if total.GreaterThan(bal.Monto) {
			return nil, &domain.InsufficientBalanceError{Available: bal.Monto, Required: total}
		}
		for _, r := range reqs {
			if err := invRepo.UpdateStock(ctx, r.Grade, items[r.Grade].Stock+r.Quantity); err != nil {
				return nil, err
			}
		}
		newBalance = bal.Monto.Sub(total)
		tipo = entity.TransactionTypeEgreso
		concepto = "Compra a " + in.Counterparty.Nombre
		fecha = in.Date
	}

	if err := balRepo.Update(ctx, newBalance); err != nil {
		return nil, err
	}
	rec := &entity.LedgerTransaction{
		ID:       txID,
		Fecha:    fecha,
		Tipo:     tipo,
		Monto:    total,
		Concepto: concepto,
	}
	if err := txRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func validateInput(in FinalizeInput) error {
	var who string
	switch in.Kind {
	case KindSale:
		who = "cliente"
	case KindPurchase:
		who = "proveedor"
	default:
		return domain.NewValidationError("tipo", fmt.Sprintf("tipo de operación desconocido: %q", in.Kind))
	}
	if in.Counterparty.ID == "" || in.Counterparty.Nombre == "" {
		return domain.NewValidationError(who, "Debe seleccionar un "+who)
	}
	if in.Cart == nil || in.Cart.IsEmpty() {
		return domain.NewValidationError("items", "Debe agregar al menos un producto")
	}
	for i, line := range in.Cart.Items() {
		if line.Cantidad <= 0 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].cantidad", i), "la cantidad debe ser mayor a 0")
		}
	}
	if !in.Cart.Total().IsPositive() {
		return domain.NewValidationError("total", "el total debe ser mayor a 0")
	}
	if in.Kind == KindPurchase {
		if !entity.IsValidPaymentMethod(in.PaymentMethod) {
			return domain.NewValidationError("medioDePago", "Debe seleccionar un medio de pago válido")
		}
		if in.Date.IsZero() {
			return domain.NewValidationError("fecha", "Debe seleccionar la fecha de la compra")
		}
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultValidation
	case errors.Is(err, domain.ErrPrecondition):
		return ResultPrecondition
	case errors.Is(err, domain.ErrInsufficientStock):
		return ResultInsufficientStock
	case errors.Is(err, domain.ErrInsufficientBalance):
		return ResultInsufficientBalance
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return ResultConflict
	}
	return ResultError
}

func (e *Engine) finish(in FinalizeInput, res *Result, attempts int, start time.Time, err error) {
	elapsed := time.Since(start)
	label := resultLabel(err)
	e.metrics.ObserveFinalize(string(in.Kind), label, attempts, elapsed)

	switch label {
	case ResultOK:
		e.log.Info().
			Str("tipo", string(in.Kind)).
			Str("transaccion_id", res.TransactionID).
			Str("total", res.Total.String()).
			Int("intentos", attempts).
			Dur("duracion", elapsed).
			Msg("transacción confirmada")
	case ResultError:
		e.log.Error().Err(err).Str("tipo", string(in.Kind)).Int("intentos", attempts).Msg("error en transacción contable")
	default:
		e.log.Warn().Err(err).Str("tipo", string(in.Kind)).Str("resultado", label).Msg("transacción rechazada")
	}
}
