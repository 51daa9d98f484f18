package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación de ProveedorRepository (usable con pool o tx).
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const proveedorColumns = `id, nit, nombre, telefono, email, direccion, rut_url, camara_url, created_at, updated_at`

func scanProveedor(row pgx.Row) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := row.Scan(&p.ID, &p.NIT, &p.Nombre, &p.Telefono, &p.Email, &p.Direccion, &p.RutURL, &p.CamaraURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo proveedor.
func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO proveedores (`+proveedorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.NIT, p.Nombre, p.Telefono, p.Email, p.Direccion, p.RutURL, p.CamaraURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProveedorRepo) GetByID(ctx context.Context, id string) (*entity.Proveedor, error) {
	p, err := scanProveedor(r.q.QueryRow(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return p, nil
}

// GetByNIT obtiene un proveedor por NIT.
func (r *ProveedorRepo) GetByNIT(ctx context.Context, nit string) (*entity.Proveedor, error) {
	p, err := scanProveedor(r.q.QueryRow(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE nit = $1`, nit))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor by nit: %w", err)
	}
	return p, nil
}

// List lista proveedores por nombre con paginación.
func (r *ProveedorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Proveedor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+proveedorColumns+` FROM proveedores ORDER BY nombre LIMIT $1 OFFSET $2`,
		pageLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los datos del proveedor.
func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE proveedores SET nit = $2, nombre = $3, telefono = $4, email = $5, direccion = $6,
			rut_url = $7, camara_url = $8, updated_at = now()
		WHERE id = $1`,
		p.ID, p.NIT, p.Nombre, p.Telefono, p.Email, p.Direccion, p.RutURL, p.CamaraURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el proveedor. Las compras guardan copia de sus datos y no se afectan.
func (r *ProveedorRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
