package entity

import "time"

// Proveedor granja o distribuidor al que se le compra.
type Proveedor struct {
	ID        string
	NIT       string
	Nombre    string
	Telefono  string
	Email     string
	Direccion string
	RutURL    string // documento RUT
	CamaraURL string // certificado de Cámara de Comercio
	CreatedAt time.Time
	UpdatedAt time.Time
}
