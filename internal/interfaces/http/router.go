package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/counterparty"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/inventory"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/orders"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/receipts"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/treasury"
	"github.com/jhoicas/huevos-kikes-scm/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC    *inventory.UseCase
	TreasuryUC     *treasury.UseCase
	CheckoutUC     *orders.CheckoutUseCase
	OrdersQuery    *orders.QueryUseCase
	CounterpartyUC *counterparty.UseCase
	ReceiptsUC     *receipts.UseCase
	JWTSecret      string
}

// ServerConfig opciones de la app Fiber. SwaggerFile y Gatherer vacíos desactivan /docs y /metrics.
type ServerConfig struct {
	AppName     string
	SwaggerFile string
	Gatherer    prometheus.Gatherer
	Metrics     HTTPMetrics
	Log         *logger.Logger
}

// NewServer construye la app con recover, logging de requests, /health, /metrics, /docs y las rutas de la API.
func NewServer(cfg ServerConfig, deps RouterDeps) *fiber.App {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(cfg.Log, cfg.Metrics))

	if cfg.SwaggerFile != "" {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.SwaggerFile,
			Path:     "docs",
			Title:    "Huevos Kikes SCM API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := api.Group("/inventario")
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:grade", inventoryHandler.Get)
	inv.Put("/:grade/precio", RequireRole(RoleAdmin), inventoryHandler.UpdatePrice)

	treasuryHandler := NewTreasuryHandler(deps.TreasuryUC)
	api.Get("/saldo", treasuryHandler.GetBalance)
	api.Post("/saldo/inicializar", RequireRole(RoleAdmin), treasuryHandler.InitializeBalance)
	api.Get("/transacciones", treasuryHandler.ListTransactions)

	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.OrdersQuery, deps.ReceiptsUC)
	ventas := api.Group("/ventas")
	ventas.Post("/", RequireRole(RoleAdmin, RoleVendedor), orderHandler.RegisterSale)
	ventas.Get("/", orderHandler.ListSales)
	ventas.Get("/:id", orderHandler.GetSale)
	ventas.Get("/:id/pdf", orderHandler.SaleReceipt)

	compras := api.Group("/compras")
	compras.Post("/", RequireRole(RoleAdmin, RoleBodeguero), orderHandler.RegisterPurchase)
	compras.Get("/", orderHandler.ListPurchases)
	compras.Get("/:id", orderHandler.GetPurchase)
	compras.Get("/:id/pdf", orderHandler.PurchaseReceipt)

	cpHandler := NewCounterpartyHandler(deps.CounterpartyUC)
	clientes := api.Group("/clientes")
	clientes.Post("/", cpHandler.CreateCliente)
	clientes.Get("/", cpHandler.ListClientes)
	clientes.Get("/:id", cpHandler.GetCliente)
	clientes.Put("/:id", cpHandler.UpdateCliente)
	clientes.Delete("/:id", cpHandler.DeleteCliente)

	proveedores := api.Group("/proveedores")
	proveedores.Post("/", cpHandler.CreateProveedor)
	proveedores.Get("/", cpHandler.ListProveedores)
	proveedores.Get("/:id", cpHandler.GetProveedor)
	proveedores.Put("/:id", cpHandler.UpdateProveedor)
	proveedores.Delete("/:id", cpHandler.DeleteProveedor)
}
