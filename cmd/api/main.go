package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/counterparty"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/inventory"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/ledger"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/orders"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/receipts"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/treasury"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/memory"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/pdf"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/huevos-kikes-scm/internal/interfaces/http"
	"github.com/jhoicas/huevos-kikes-scm/pkg/config"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

// repos agrupa los puertos de persistencia del driver elegido.
type repos struct {
	txRunner    ledger.TxRunner
	inventory   repository.InventoryRepository
	balance     repository.BalanceRepository
	txs         repository.TransactionRepository
	sales       repository.SaleRepository
	purchases   repository.PurchaseRepository
	clientes    repository.ClienteRepository
	proveedores repository.ProveedorRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var r repos
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		// Solo desarrollo: los datos se pierden al reiniciar.
		store := memory.New(cfg.Ledger.MaxRetries)
		store.SeedInventory(nil)
		r = repos{
			txRunner:    store,
			inventory:   store.Inventory(),
			balance:     store.Balance(),
			txs:         store.Transactions(),
			sales:       store.Sales(),
			purchases:   store.Purchases(),
			clientes:    store.Clientes(),
			proveedores: store.Proveedores(),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			txRunner:    postgres.NewTxRunner(pool, cfg.Ledger.MaxRetries, log),
			inventory:   postgres.NewInventoryRepository(pool),
			balance:     postgres.NewBalanceRepository(pool),
			txs:         postgres.NewTransactionRepository(pool),
			sales:       postgres.NewSaleRepository(pool),
			purchases:   postgres.NewPurchaseRepository(pool),
			clientes:    postgres.NewClienteRepository(pool),
			proveedores: postgres.NewProveedorRepository(pool),
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMetrics := metrics.New(reg)

	engine := ledger.NewEngine(r.txRunner, promMetrics, log)
	writer := orders.NewWriter(r.sales, r.purchases, log)
	business := receipts.Business{
		Name:    cfg.Business.Name,
		NIT:     cfg.Business.NIT,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
	}

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		SwaggerFile: "./docs/swagger.json",
		Gatherer:    reg,
		Metrics:     promMetrics,
		Log:         log,
	}, httpRouter.RouterDeps{
		InventoryUC:    inventory.NewUseCase(r.inventory),
		TreasuryUC:     treasury.NewUseCase(r.balance, r.txs, log),
		CheckoutUC:     orders.NewCheckoutUseCase(engine, writer, r.inventory, r.balance, r.clientes, r.proveedores, log),
		OrdersQuery:    orders.NewQueryUseCase(r.sales, r.purchases),
		CounterpartyUC: counterparty.NewUseCase(r.clientes, r.proveedores),
		ReceiptsUC:     receipts.NewUseCase(r.sales, r.purchases, business, infrapdf.NewMarotoReceiptGenerator()),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
