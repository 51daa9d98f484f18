package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/orders"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
)

func TestQuery_ListaYObtieneVentas(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.uc.RegisterSale(ctx, vendedor, dto.RegisterSaleRequest{
			ClienteID: f.cliente.ID,
			Items:     []dto.OrderItemRequest{{ID: "A", Cantidad: 1}},
		})
		require.NoError(t, err)
	}

	q := orders.NewQueryUseCase(f.store.Sales(), f.store.Purchases())
	list, err := q.ListSales(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := q.GetSale(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list[0].TransaccionID, got.TransaccionID)

	_, err = q.GetSale(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = q.GetPurchase(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	purchases, err := q.ListPurchases(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, purchases)
}
