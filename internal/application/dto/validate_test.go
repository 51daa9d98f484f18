package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
)

func TestValidate_VentaValida(t *testing.T) {
	req := dto.RegisterSaleRequest{ClienteID: "c1", Items: []dto.OrderItemRequest{{ID: "A", Cantidad: 5}}}
	assert.NoError(t, dto.Validate(req))
}

func TestValidate_CantidadCeroReportaRutaJSON(t *testing.T) {
	req := dto.RegisterSaleRequest{ClienteID: "c1", Items: []dto.OrderItemRequest{{ID: "A", Cantidad: 2}, {ID: "B", Cantidad: 0}}}
	err := dto.Validate(req)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items[1].cantidad", vErr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_CompraMedioDePagoInvalido(t *testing.T) {
	req := dto.RegisterPurchaseRequest{
		ProveedorID: "p1",
		Items:       []dto.OrderItemRequest{{ID: "AA", Cantidad: 1}},
		MedioDePago: "Bitcoin",
		Fecha:       time.Now(),
	}
	var vErr *domain.ValidationError
	require.ErrorAs(t, dto.Validate(req), &vErr)
	assert.Equal(t, "medio_de_pago", vErr.Field)
}

func TestValidate_PrecioDecimal(t *testing.T) {
	assert.Error(t, dto.Validate(dto.UpdatePriceRequest{Precio: decimal.Zero}))
	assert.NoError(t, dto.Validate(dto.UpdatePriceRequest{Precio: decimal.NewFromInt(10500)}))
}

func TestValidate_ProveedorURLs(t *testing.T) {
	req := dto.ProveedorRequest{NIT: "900123456", Nombre: "Granja", RutURL: "no es url"}
	var vErr *domain.ValidationError
	require.ErrorAs(t, dto.Validate(req), &vErr)
	assert.Equal(t, "rut_url", vErr.Field)

	req.RutURL = "https://storage.example.com/rut.pdf"
	assert.NoError(t, dto.Validate(req))
}

func TestValidate_CantidadConTope(t *testing.T) {
	req := dto.RegisterPurchaseRequest{
		ProveedorID: "p1",
		Items:       []dto.OrderItemRequest{{ID: "A", Cantidad: 100000}, {ID: "A", Cantidad: 100001}},
		MedioDePago: "Efectivo",
		Fecha:       time.Now(),
	}
	var vErr *domain.ValidationError
	require.ErrorAs(t, dto.Validate(req), &vErr)
	assert.Equal(t, "items[1].cantidad", vErr.Field)
}
