package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade categoría de huevo; es la llave del inventario.
type Grade string

const (
	GradeA  Grade = "A"
	GradeAA Grade = "AA"
	GradeB  Grade = "B"
)

// Grades lista los grados en el orden en que se muestran y se bloquean en la BD.
var Grades = []Grade{GradeA, GradeAA, GradeB}

// IsValid indica si el grado es uno de los tres conocidos.
func (g Grade) IsValid() bool {
	switch g {
	case GradeA, GradeAA, GradeB:
		return true
	}
	return false
}

// DefaultPrices precios de catálogo usados al sembrar el inventario.
var DefaultPrices = map[Grade]int64{
	GradeA:  10500,
	GradeAA: 20700,
	GradeB:  11350,
}

// DefaultNames nombres de catálogo usados al sembrar el inventario.
var DefaultNames = map[Grade]string{
	GradeA:  "Huevo A",
	GradeAA: "Huevo AA",
	GradeB:  "Huevo B",
}

// InventoryItem stock y precio de un grado. Solo el motor contable modifica Stock.
type InventoryItem struct {
	ID        Grade
	Nombre    string
	Precio    decimal.Decimal
	Stock     int
	UpdatedAt time.Time
}
