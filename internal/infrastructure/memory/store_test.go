package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/memory"
)

func seeded(t *testing.T, retries int) *memory.Store {
	t.Helper()
	s := memory.New(retries)
	s.SeedInventory(map[entity.Grade]int{entity.GradeA: 100, entity.GradeAA: 50, entity.GradeB: 20})
	s.SeedBalance(decimal.NewFromInt(500000))
	return s
}

// bumpStock confirma una transacción aparte que suma delta al grado.
func bumpStock(t *testing.T, s *memory.Store, g entity.Grade, delta int) {
	t.Helper()
	err := s.Run(context.Background(), func(inv repository.InventoryRepository, _ repository.BalanceRepository, _ repository.TransactionRepository) error {
		it, err := inv.GetForUpdate(context.Background(), g)
		if err != nil {
			return err
		}
		return inv.UpdateStock(context.Background(), g, it.Stock+delta)
	})
	require.NoError(t, err)
}

func TestRun_ConflictoReintentaCallbackCompleto(t *testing.T) {
	s := seeded(t, 5)
	ctx := context.Background()
	attempts := 0

	err := s.Run(ctx, func(inv repository.InventoryRepository, _ repository.BalanceRepository, _ repository.TransactionRepository) error {
		attempts++
		it, err := inv.GetForUpdate(ctx, entity.GradeA)
		if err != nil {
			return err
		}
		if attempts == 1 {
			// otra transacción confirma entre la lectura y el commit
			bumpStock(t, s, entity.GradeA, 7)
		}
		return inv.UpdateStock(ctx, entity.GradeA, it.Stock-10)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	it, err := s.Inventory().GetByID(ctx, entity.GradeA)
	require.NoError(t, err)
	assert.Equal(t, 97, it.Stock, "100 + 7 - 10: no se pierde la escritura concurrente")
}

func TestRun_AgotaReintentos(t *testing.T) {
	s := seeded(t, 3)
	ctx := context.Background()
	attempts := 0

	err := s.Run(ctx, func(inv repository.InventoryRepository, bal repository.BalanceRepository, _ repository.TransactionRepository) error {
		attempts++
		if _, err := bal.GetForUpdate(ctx); err != nil {
			return err
		}
		b, _ := s.Balance().Get(ctx)
		require.NoError(t, s.Balance().Update(ctx, b.Monto.Add(decimal.NewFromInt(1))))
		return bal.Update(ctx, decimal.Zero)
	})

	var conflict *domain.ConcurrencyConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 3, conflict.Attempts)
	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	b, _ := s.Balance().Get(ctx)
	assert.True(t, b.Monto.Equal(decimal.NewFromInt(500003)))
}

func TestRun_ErrorDelCallbackDescartaEscrituras(t *testing.T) {
	s := seeded(t, 5)
	ctx := context.Background()

	err := s.Run(ctx, func(inv repository.InventoryRepository, bal repository.BalanceRepository, txRepo repository.TransactionRepository) error {
		require.NoError(t, inv.UpdateStock(ctx, entity.GradeB, 0))
		require.NoError(t, bal.Update(ctx, decimal.NewFromInt(1)))
		require.NoError(t, txRepo.Create(ctx, &entity.LedgerTransaction{ID: "t1", Monto: decimal.NewFromInt(1)}))
		return domain.ErrInsufficientStock
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	it, _ := s.Inventory().GetByID(ctx, entity.GradeB)
	assert.Equal(t, 20, it.Stock)
	b, _ := s.Balance().Get(ctx)
	assert.True(t, b.Monto.Equal(decimal.NewFromInt(500000)))
	list, _ := s.Transactions().List(ctx, 0, 0)
	assert.Empty(t, list)
}

func TestRun_LecturasVenDentroDeLaTx(t *testing.T) {
	s := seeded(t, 5)
	ctx := context.Background()

	err := s.Run(ctx, func(inv repository.InventoryRepository, _ repository.BalanceRepository, txRepo repository.TransactionRepository) error {
		require.NoError(t, inv.UpdateStock(ctx, entity.GradeAA, 49))
		it, err := inv.GetByID(ctx, entity.GradeAA)
		require.NoError(t, err)
		assert.Equal(t, 49, it.Stock)

		require.NoError(t, txRepo.Create(ctx, &entity.LedgerTransaction{ID: "t1"}))
		tr, err := txRepo.GetByID(ctx, "t1")
		require.NoError(t, err)
		assert.NotNil(t, tr)
		return nil
	})
	require.NoError(t, err)
}

func TestBalance_InicializarSoloUnaVez(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()

	b, err := s.Balance().Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, s.Balance().Initialize(ctx, decimal.NewFromInt(1000)))
	assert.ErrorIs(t, s.Balance().Initialize(ctx, decimal.NewFromInt(5)), domain.ErrConflict)
}

func TestTransactions_ListaMasRecientePrimero(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.Transactions().Create(ctx, &entity.LedgerTransaction{ID: "viejo", Fecha: base}))
	require.NoError(t, s.Transactions().Create(ctx, &entity.LedgerTransaction{ID: "nuevo", Fecha: base.Add(time.Hour)}))
	require.NoError(t, s.Transactions().Create(ctx, &entity.LedgerTransaction{ID: "medio", Fecha: base.Add(time.Minute)}))

	list, err := s.Transactions().List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "nuevo", list[0].ID)
	assert.Equal(t, "medio", list[1].ID)

	assert.ErrorIs(t, s.Transactions().Create(ctx, &entity.LedgerTransaction{ID: "nuevo"}), domain.ErrDuplicate)
}

func TestClientes_CedulaUnica(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()
	require.NoError(t, s.Clientes().Create(ctx, &entity.Cliente{ID: "c1", Cedula: "123", Nombre: "Ana"}))
	assert.ErrorIs(t, s.Clientes().Create(ctx, &entity.Cliente{ID: "c2", Cedula: "123", Nombre: "Luis"}), domain.ErrDuplicate)

	require.NoError(t, s.Clientes().Create(ctx, &entity.Cliente{ID: "c2", Cedula: "456", Nombre: "Luis"}))
	assert.ErrorIs(t, s.Clientes().Update(ctx, &entity.Cliente{ID: "c2", Cedula: "123", Nombre: "Luis"}), domain.ErrDuplicate)
	assert.ErrorIs(t, s.Clientes().Delete(ctx, "nope"), domain.ErrNotFound)

	got, err := s.Clientes().GetByCedula(ctx, "456")
	require.NoError(t, err)
	assert.Equal(t, "c2", got.ID)
}

func TestSales_ListaPaginadaMasRecientePrimero(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()
	for _, id := range []string{"v1", "v2", "v3"} {
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: id}))
	}
	list, err := s.Sales().List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "v2", list[0].ID)
	assert.Equal(t, "v1", list[1].ID)
}

func TestOrders_LecturasNoCompartenLineas(t *testing.T) {
	s := seeded(t, 1)
	ctx := context.Background()
	lines := []entity.OrderLineItem{{GradeID: entity.GradeA, Nombre: "Huevo A", Cantidad: 2, Subtotal: decimal.NewFromInt(21000)}}
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "v-1", Items: lines}))
	require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{ID: "c-1", Items: lines}))

	sale, err := s.Sales().GetByID(ctx, "v-1")
	require.NoError(t, err)
	sale.Items[0].Cantidad = 99
	listed, err := s.Sales().List(ctx, 10, 0)
	require.NoError(t, err)
	listed[0].Items[0].Cantidad = 77
	again, err := s.Sales().GetByID(ctx, "v-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Cantidad)

	p, err := s.Purchases().GetByID(ctx, "c-1")
	require.NoError(t, err)
	p.Items[0].Cantidad = 99
	pAgain, err := s.Purchases().GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 2, pAgain.Items[0].Cantidad)
}
