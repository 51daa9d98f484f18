// Package cart arma el carrito de una venta o compra antes de confirmarla.
// Es estado local en memoria: no hace I/O ni se comparte entre sesiones.
package cart

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

// Catalog fuente de precios vigente (snapshot del inventario).
type Catalog interface {
	Lookup(grade entity.Grade) (entity.InventoryItem, bool)
}

type snapshot map[entity.Grade]entity.InventoryItem

func (s snapshot) Lookup(grade entity.Grade) (entity.InventoryItem, bool) {
	it, ok := s[grade]
	return it, ok
}

// CatalogFromItems construye un Catalog a partir de una lectura del inventario.
func CatalogFromItems(items []*entity.InventoryItem) Catalog {
	s := make(snapshot, len(items))
	for _, it := range items {
		if it != nil {
			s[it.ID] = *it
		}
	}
	return s
}

// Cart líneas de una orden en curso, una por grado.
// Internamente usa un mapa por grado y un slice con el orden de inserción.
type Cart struct {
	lines map[entity.Grade]*entity.OrderLineItem
	order []entity.Grade
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{lines: make(map[entity.Grade]*entity.OrderLineItem)}
}

// AddItem agrega quantity unidades del grado. Si el grado ya está en el carrito suma la cantidad
// y recalcula el subtotal con el precio actual del catálogo.
// Si falla, el carrito queda igual.
func (c *Cart) AddItem(grade entity.Grade, quantity int, catalog Catalog) error {
	if quantity <= 0 {
		return domain.NewValidationError("cantidad", "la cantidad debe ser mayor a 0")
	}
	if catalog == nil {
		return domain.NewValidationError("id", "catálogo no disponible")
	}
	item, ok := catalog.Lookup(grade)
	if !ok {
		return domain.NewValidationError("id", "producto no encontrado en inventario: "+string(grade))
	}

	if line, exists := c.lines[grade]; exists {
		if line.Cantidad > math.MaxInt-quantity {
			return domain.NewValidationError("cantidad", "la cantidad acumulada excede el máximo permitido")
		}
		line.Cantidad += quantity
		line.Nombre = item.Nombre
		line.PrecioUnitario = item.Precio
		line.Subtotal = item.Precio.Mul(decimal.NewFromInt(int64(line.Cantidad)))
		return nil
	}

	c.lines[grade] = &entity.OrderLineItem{
		GradeID:        grade,
		Nombre:         item.Nombre,
		Cantidad:       quantity,
		PrecioUnitario: item.Precio,
		Subtotal:       item.Precio.Mul(decimal.NewFromInt(int64(quantity))),
	}
	c.order = append(c.order, grade)
	return nil
}

// RemoveItem quita la línea del grado. No hace nada si no existe.
func (c *Cart) RemoveItem(grade entity.Grade) {
	if _, ok := c.lines[grade]; !ok {
		return
	}
	delete(c.lines, grade)
	for i, g := range c.order {
		if g == grade {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Total suma de subtotales; se recalcula en cada llamada.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, g := range c.order {
		total = total.Add(c.lines[g].Subtotal)
	}
	return total
}

// Items copia de las líneas en orden de inserción.
func (c *Cart) Items() []entity.OrderLineItem {
	out := make([]entity.OrderLineItem, 0, len(c.order))
	for _, g := range c.order {
		out = append(out, *c.lines[g])
	}
	return out
}

func (c *Cart) Len() int { return len(c.order) }

func (c *Cart) IsEmpty() bool { return len(c.order) == 0 }
