package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/inventory"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/memory"
)

func newUseCase() *inventory.UseCase {
	s := memory.New(1)
	s.SeedInventory(map[entity.Grade]int{entity.GradeA: 12})
	return inventory.NewUseCase(s.Inventory())
}

func TestListInventory(t *testing.T) {
	list, err := newUseCase().ListInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].ID)
	assert.Equal(t, 12, list[0].Stock)
	assert.True(t, list[0].Precio.Equal(decimal.NewFromInt(10500)))
}

func TestGetItem_GradoDesconocido(t *testing.T) {
	_, err := newUseCase().GetItem(context.Background(), "XL")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePrice(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	got, err := uc.UpdatePrice(ctx, "AA", dto.UpdatePriceRequest{Precio: decimal.NewFromInt(21000)})
	require.NoError(t, err)
	assert.True(t, got.Precio.Equal(decimal.NewFromInt(21000)))
	assert.Equal(t, 0, got.Stock)

	_, err = uc.UpdatePrice(ctx, "AA", dto.UpdatePriceRequest{Precio: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
