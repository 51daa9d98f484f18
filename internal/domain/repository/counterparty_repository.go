package repository

import (
	"context"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

// ClienteRepository puerto de persistencia de clientes. Create/Update devuelven domain.ErrDuplicate si la cédula ya existe.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByCedula(ctx context.Context, cedula string) (*entity.Cliente, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	Delete(ctx context.Context, id string) error
}

// ProveedorRepository puerto de persistencia de proveedores. NIT único.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, id string) (*entity.Proveedor, error)
	GetByNIT(ctx context.Context, nit string) (*entity.Proveedor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Proveedor, error)
	Update(ctx context.Context, p *entity.Proveedor) error
	Delete(ctx context.Context, id string) error
}
