package entity

import "time"

// Cliente comprador de huevos.
type Cliente struct {
	ID        string
	Cedula    string
	Nombre    string
	Telefono  string
	Email     string
	Direccion string
	Lat       *float64
	Lng       *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
