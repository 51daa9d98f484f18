package inventory

import (
	"sort"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

// Requirement cantidad total pedida de un grado en una orden.
type Requirement struct {
	Grade    entity.Grade
	Nombre   string
	Quantity int
}

// Aggregate agrupa las líneas por grado (servicio de dominio).
// El resultado queda ordenado por grado para que los bloqueos de fila se tomen siempre en el mismo orden.
func Aggregate(lines []entity.OrderLineItem) []Requirement {
	byGrade := make(map[entity.Grade]*Requirement, len(lines))
	for _, l := range lines {
		if r, ok := byGrade[l.GradeID]; ok {
			r.Quantity += l.Cantidad
			continue
		}
		byGrade[l.GradeID] = &Requirement{Grade: l.GradeID, Nombre: l.Nombre, Quantity: l.Cantidad}
	}
	out := make([]Requirement, 0, len(byGrade))
	for _, r := range byGrade {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Grade < out[j].Grade })
	return out
}

// CheckAvailability valida todas las líneas de una venta contra el stock leído, antes de escribir nada.
// Devuelve el primer faltante como *domain.InsufficientStockError.
func CheckAvailability(items map[entity.Grade]*entity.InventoryItem, reqs []Requirement) error {
	for _, r := range reqs {
		it, ok := items[r.Grade]
		if !ok {
			return &domain.PreconditionError{
				Resource: "inventario/" + string(r.Grade),
				Message:  "Producto no encontrado en inventario: " + string(r.Grade),
			}
		}
		if it.Stock < r.Quantity {
			return &domain.InsufficientStockError{
				Grade:     string(r.Grade),
				Nombre:    it.Nombre,
				Available: it.Stock,
				Requested: r.Quantity,
			}
		}
	}
	return nil
}
