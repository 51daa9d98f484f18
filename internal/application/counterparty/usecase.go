package counterparty

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/pkg/nit"
)

// UseCase casos de uso de clientes y proveedores.
type UseCase struct {
	clientes    repository.ClienteRepository
	proveedores repository.ProveedorRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(clientes repository.ClienteRepository, proveedores repository.ProveedorRepository) *UseCase {
	return &UseCase{clientes: clientes, proveedores: proveedores}
}

// CreateCliente crea un cliente. domain.ErrDuplicate si la cédula ya está registrada.
func (uc *UseCase) CreateCliente(ctx context.Context, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	in = trimCliente(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.clientes.GetByCedula(ctx, in.Cedula)
	if err != nil {
		return nil, fmt.Errorf("cliente: buscar cédula: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un cliente con cédula %s", domain.ErrDuplicate, in.Cedula)
	}
	now := time.Now().UTC()
	c := &entity.Cliente{
		ID:        uuid.New().String(),
		Cedula:    in.Cedula,
		Nombre:    in.Nombre,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		Lat:       in.Lat,
		Lng:       in.Lng,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientes.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.ToClienteResponse(c)
	return &resp, nil
}

func (uc *UseCase) ListClientes(ctx context.Context, page dto.PageRequest) ([]dto.ClienteResponse, error) {
	page.DefaultPage()
	list, err := uc.clientes.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToClienteResponse(c))
	}
	return out, nil
}

func (uc *UseCase) GetCliente(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.clientes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToClienteResponse(c)
	return &resp, nil
}

// UpdateCliente reemplaza los datos del cliente. Las ventas ya registradas conservan el nombre con que se hicieron.
func (uc *UseCase) UpdateCliente(ctx context.Context, id string, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	in = trimCliente(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.clientes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Cedula = in.Cedula
	c.Nombre = in.Nombre
	c.Telefono = in.Telefono
	c.Email = in.Email
	c.Direccion = in.Direccion
	c.Lat = in.Lat
	c.Lng = in.Lng
	c.UpdatedAt = time.Now().UTC()
	if err := uc.clientes.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe un cliente con cédula %s", domain.ErrDuplicate, in.Cedula)
		}
		return nil, err
	}
	resp := dto.ToClienteResponse(c)
	return &resp, nil
}

func (uc *UseCase) DeleteCliente(ctx context.Context, id string) error {
	return uc.clientes.Delete(ctx, id)
}

// CreateProveedor crea un proveedor. domain.ErrDuplicate si el NIT ya está registrado.
func (uc *UseCase) CreateProveedor(ctx context.Context, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	in = trimProveedor(in)
	if err := validateProveedor(in); err != nil {
		return nil, err
	}
	existing, err := uc.proveedores.GetByNIT(ctx, in.NIT)
	if err != nil {
		return nil, fmt.Errorf("proveedor: buscar NIT: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un proveedor con NIT %s", domain.ErrDuplicate, in.NIT)
	}
	now := time.Now().UTC()
	p := &entity.Proveedor{
		ID:        uuid.New().String(),
		NIT:       in.NIT,
		Nombre:    in.Nombre,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		RutURL:    in.RutURL,
		CamaraURL: in.CamaraURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.proveedores.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.ToProveedorResponse(p)
	return &resp, nil
}

func (uc *UseCase) ListProveedores(ctx context.Context, page dto.PageRequest) ([]dto.ProveedorResponse, error) {
	page.DefaultPage()
	list, err := uc.proveedores.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProveedorResponse(p))
	}
	return out, nil
}

func (uc *UseCase) GetProveedor(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	p, err := uc.proveedores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToProveedorResponse(p)
	return &resp, nil
}

func (uc *UseCase) UpdateProveedor(ctx context.Context, id string, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	in = trimProveedor(in)
	if err := validateProveedor(in); err != nil {
		return nil, err
	}
	p, err := uc.proveedores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.NIT = in.NIT
	p.Nombre = in.Nombre
	p.Telefono = in.Telefono
	p.Email = in.Email
	p.Direccion = in.Direccion
	p.RutURL = in.RutURL
	p.CamaraURL = in.CamaraURL
	p.UpdatedAt = time.Now().UTC()
	if err := uc.proveedores.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe un proveedor con NIT %s", domain.ErrDuplicate, in.NIT)
		}
		return nil, err
	}
	resp := dto.ToProveedorResponse(p)
	return &resp, nil
}

func (uc *UseCase) DeleteProveedor(ctx context.Context, id string) error {
	return uc.proveedores.Delete(ctx, id)
}

func trimCliente(in dto.ClienteRequest) dto.ClienteRequest {
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Email = strings.TrimSpace(in.Email)
	in.Direccion = strings.TrimSpace(in.Direccion)
	return in
}

// validateProveedor aplica las reglas del DTO y, si el NIT trae dígito de verificación, lo comprueba.
func validateProveedor(in dto.ProveedorRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	if nit.HasCheckDigit(in.NIT) {
		if err := nit.Validate(in.NIT); err != nil {
			return domain.NewValidationError("nit", err.Error())
		}
	}
	return nil
}

func trimProveedor(in dto.ProveedorRequest) dto.ProveedorRequest {
	in.NIT = strings.TrimSpace(in.NIT)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Email = strings.TrimSpace(in.Email)
	in.Direccion = strings.TrimSpace(in.Direccion)
	in.RutURL = strings.TrimSpace(in.RutURL)
	in.CamaraURL = strings.TrimSpace(in.CamaraURL)
	return in
}
