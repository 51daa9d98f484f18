package dto

import "time"

// ClienteRequest body para crear o actualizar un cliente.
type ClienteRequest struct {
	Cedula    string   `json:"cedula" validate:"required,max=20"`
	Nombre    string   `json:"nombre" validate:"required,max=120"`
	Telefono  string   `json:"telefono,omitempty" validate:"max=30"`
	Email     string   `json:"email,omitempty" validate:"omitempty,email"`
	Direccion string   `json:"direccion,omitempty" validate:"max=200"`
	Lat       *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng       *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Cedula    string    `json:"cedula"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProveedorRequest body para crear o actualizar un proveedor. RUT y Cámara son URLs de documentos ya subidos.
type ProveedorRequest struct {
	NIT       string `json:"nit" validate:"required,max=20"`
	Nombre    string `json:"nombre" validate:"required,max=120"`
	Telefono  string `json:"telefono,omitempty" validate:"max=30"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Direccion string `json:"direccion,omitempty" validate:"max=200"`
	RutURL    string `json:"rut_url,omitempty" validate:"omitempty,url"`
	CamaraURL string `json:"camara_url,omitempty" validate:"omitempty,url"`
}

// ProveedorResponse proveedor en respuestas.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	NIT       string    `json:"nit"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	RutURL    string    `json:"rut_url,omitempty"`
	CamaraURL string    `json:"camara_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
