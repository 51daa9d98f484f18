package counterparty_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/counterparty"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/memory"
)

func newUseCase() *counterparty.UseCase {
	s := memory.New(1)
	return counterparty.NewUseCase(s.Clientes(), s.Proveedores())
}

func TestCliente_CRUD(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	lat := 4.6097
	c, err := uc.CreateCliente(ctx, dto.ClienteRequest{Cedula: " 1020304050 ", Nombre: "Tienda La Esquina", Lat: &lat})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "1020304050", c.Cedula)

	_, err = uc.CreateCliente(ctx, dto.ClienteRequest{Cedula: "1020304050", Nombre: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.UpdateCliente(ctx, c.ID, dto.ClienteRequest{Cedula: "1020304050", Nombre: "Tienda Don Pedro"})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Don Pedro", upd.Nombre)

	got, err := uc.GetCliente(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tienda Don Pedro", got.Nombre)

	list, err := uc.ListClientes(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteCliente(ctx, c.ID))
	_, err = uc.GetCliente(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteCliente(ctx, c.ID), domain.ErrNotFound)
}

func TestCliente_Validacion(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateCliente(ctx, dto.ClienteRequest{Cedula: "1", Nombre: "   "})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "nombre", vErr.Field)

	lat := 120.0
	_, err = uc.CreateCliente(ctx, dto.ClienteRequest{Cedula: "1", Nombre: "X", Lat: &lat})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "lat", vErr.Field)

	_, err = uc.CreateCliente(ctx, dto.ClienteRequest{Cedula: "1", Nombre: "X", Email: "no-es-email"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestCliente_UpdateCedulaDuplicada(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	a, err := uc.CreateCliente(ctx, dto.ClienteRequest{Cedula: "111", Nombre: "A"})
	require.NoError(t, err)
	_, err = uc.CreateCliente(ctx, dto.ClienteRequest{Cedula: "222", Nombre: "B"})
	require.NoError(t, err)

	_, err = uc.UpdateCliente(ctx, a.ID, dto.ClienteRequest{Cedula: "222", Nombre: "A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProveedor_CRUD(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	p, err := uc.CreateProveedor(ctx, dto.ProveedorRequest{
		NIT:    "900123456",
		Nombre: "Granja El Roble",
		RutURL: "https://storage.example.com/rut.pdf",
	})
	require.NoError(t, err)

	_, err = uc.CreateProveedor(ctx, dto.ProveedorRequest{NIT: "900123456", Nombre: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.UpdateProveedor(ctx, p.ID, dto.ProveedorRequest{NIT: "900123456", Nombre: "Granja El Roble SAS"})
	require.NoError(t, err)
	assert.Equal(t, "Granja El Roble SAS", upd.Nombre)
	assert.Empty(t, upd.RutURL)

	_, err = uc.UpdateProveedor(ctx, "no-existe", dto.ProveedorRequest{NIT: "1", Nombre: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListProveedores(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteProveedor(ctx, p.ID))
	_, err = uc.GetProveedor(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProveedor_NITConDigitoDeVerificacion(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateProveedor(ctx, dto.ProveedorRequest{NIT: "900.123.456-7", Nombre: "Avícola Mal Digitada"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "nit", vErr.Field)

	p, err := uc.CreateProveedor(ctx, dto.ProveedorRequest{NIT: "900123456-8", Nombre: "Granja El Roble"})
	require.NoError(t, err)

	_, err = uc.UpdateProveedor(ctx, p.ID, dto.ProveedorRequest{NIT: "800197268-5", Nombre: "Granja El Roble"})
	require.ErrorAs(t, err, &vErr)
	got, err := uc.GetProveedor(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "900123456-8", got.NIT)
}
