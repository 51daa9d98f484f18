package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

// UseCase consulta del inventario por grado y edición de precios.
// El stock solo cambia a través del motor contable.
type UseCase struct {
	repo repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.InventoryRepository) *UseCase {
	return &UseCase{repo: repo}
}

// ListInventory devuelve los grados ordenados (A, AA, B).
func (uc *UseCase) ListInventory(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventario: listar: %w", err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToInventoryItemResponse(it))
	}
	return out, nil
}

func (uc *UseCase) GetItem(ctx context.Context, grade string) (*dto.InventoryItemResponse, error) {
	g, err := parseGrade(grade)
	if err != nil {
		return nil, err
	}
	it, err := uc.repo.GetByID(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("inventario: obtener %s: %w", g, err)
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToInventoryItemResponse(it)
	return &resp, nil
}

// UpdatePrice cambia el precio de un grado. Los carritos ya armados conservan el precio con que se armaron.
func (uc *UseCase) UpdatePrice(ctx context.Context, grade string, in dto.UpdatePriceRequest) (*dto.InventoryItemResponse, error) {
	g, err := parseGrade(grade)
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePrice(ctx, g, in.Precio); err != nil {
		return nil, fmt.Errorf("inventario: actualizar precio %s: %w", g, err)
	}
	return uc.GetItem(ctx, grade)
}

func parseGrade(s string) (entity.Grade, error) {
	g := entity.Grade(s)
	if !g.IsValid() {
		return "", domain.NewValidationError("grade", fmt.Sprintf("grado desconocido: %q", s))
	}
	return g, nil
}
