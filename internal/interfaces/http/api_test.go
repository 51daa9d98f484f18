package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/counterparty"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/inventory"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/ledger"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/orders"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/receipts"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/treasury"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/memory"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/metrics"
	"github.com/jhoicas/huevos-kikes-scm/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/huevos-kikes-scm/internal/interfaces/http"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

type serverOpts struct {
	noBalance bool
	sales     repository.SaleRepository
	runner    ledger.TxRunner
}

// conflictRunner simula una transacción que nunca logra serializarse.
type conflictRunner struct{}

func (conflictRunner) Run(context.Context, func(repository.InventoryRepository, repository.BalanceRepository, repository.TransactionRepository) error) error {
	return &domain.ConcurrencyConflictError{Attempts: 5, Err: errors.New("could not serialize access")}
}

type brokenSales struct{ repository.SaleRepository }

func (brokenSales) Create(context.Context, *entity.Sale) error { return errors.New("conexión perdida") }

func newTestServer(t *testing.T, opts serverOpts) *testServer {
	t.Helper()
	ctx := context.Background()
	s := memory.New(5)
	s.SeedInventory(map[entity.Grade]int{entity.GradeA: 15, entity.GradeAA: 10, entity.GradeB: 8})
	if !opts.noBalance {
		s.SeedBalance(decimal.NewFromInt(100000))
	}
	require.NoError(t, s.Clientes().Create(ctx, &entity.Cliente{ID: "cli-1", Cedula: "1020304050", Nombre: "Tienda La Esquina"}))
	require.NoError(t, s.Proveedores().Create(ctx, &entity.Proveedor{ID: "prov-1", NIT: "900123456", Nombre: "Granja El Roble"}))

	sales := opts.sales
	if sales == nil {
		sales = s.Sales()
	}
	var runner ledger.TxRunner = s
	if opts.runner != nil {
		runner = opts.runner
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	engine := ledger.NewEngine(runner, m, nil)
	writer := orders.NewWriter(sales, s.Purchases(), nil)

	app := apphttp.NewServer(apphttp.ServerConfig{
		AppName:  "huevos-kikes-test",
		Gatherer: reg,
		Metrics:  m,
	}, apphttp.RouterDeps{
		InventoryUC:    inventory.NewUseCase(s.Inventory()),
		TreasuryUC:     treasury.NewUseCase(s.Balance(), s.Transactions(), nil),
		CheckoutUC:     orders.NewCheckoutUseCase(engine, writer, s.Inventory(), s.Balance(), s.Clientes(), s.Proveedores(), nil),
		OrdersQuery:    orders.NewQueryUseCase(sales, s.Purchases()),
		CounterpartyUC: counterparty.NewUseCase(s.Clientes(), s.Proveedores()),
		ReceiptsUC:     receipts.NewUseCase(sales, s.Purchases(), receipts.Business{Name: "Huevos Kikes"}, pdf.NewMarotoReceiptGenerator()),
		JWTSecret:      testJWTSecret,
	})
	return &testServer{app: app, store: s}
}

func (ts *testServer) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", bearer(t, role))
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (ts *testServer) stock(t *testing.T, g entity.Grade) int {
	t.Helper()
	it, err := ts.store.Inventory().GetByID(context.Background(), g)
	require.NoError(t, err)
	return it.Stock
}

func sale(lines ...dto.OrderItemRequest) dto.RegisterSaleRequest {
	return dto.RegisterSaleRequest{ClienteID: "cli-1", Items: lines}
}

func TestPostVenta_Creada(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", sale(dto.OrderItemRequest{ID: "A", Cantidad: 10}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	got := decode[dto.SaleResponse](t, resp)

	assert.True(t, got.Total.Equal(decimal.NewFromInt(105000)))
	assert.Equal(t, testEmail, got.VendedorEmail)
	assert.NotEmpty(t, got.TransaccionID)
	assert.Equal(t, 5, ts.stock(t, entity.GradeA))

	detail := ts.do(t, http.MethodGet, "/api/ventas/"+got.ID, "vendedor", nil)
	assert.Equal(t, http.StatusOK, detail.StatusCode)
	detail.Body.Close()

	pdfResp := ts.do(t, http.MethodGet, "/api/ventas/"+got.ID+"/pdf", "vendedor", nil)
	defer pdfResp.Body.Close()
	assert.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(pdfResp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	saldo := decode[dto.BalanceResponse](t, ts.do(t, http.MethodGet, "/api/saldo", "vendedor", nil))
	assert.True(t, saldo.Monto.Equal(decimal.NewFromInt(205000)))

	txs := decode[[]dto.TransactionResponse](t, ts.do(t, http.MethodGet, "/api/transacciones?limit=5", "vendedor", nil))
	require.Len(t, txs, 1)
	assert.Equal(t, "Venta a Tienda La Esquina", txs[0].Concepto)
}

func TestPostVenta_StockInsuficiente409(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", sale(dto.OrderItemRequest{ID: "B", Cantidad: 9}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "Stock insuficiente para Huevo B. Disponible: 8, solicitado: 9", body.Message)
	assert.Equal(t, "B", body.Details["grade"])
	assert.Equal(t, float64(8), body.Details["available"])
	assert.Equal(t, 8, ts.stock(t, entity.GradeB))
}

func TestPostVenta_SinSaldo412(t *testing.T) {
	ts := newTestServer(t, serverOpts{noBalance: true})

	resp := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", sale(dto.OrderItemRequest{ID: "A", Cantidad: 1}))
	require.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "Debe inicializar el saldo antes de registrar ventas.", body.Message)
}

func TestSaldoInicializar(t *testing.T) {
	ts := newTestServer(t, serverOpts{noBalance: true})
	body := dto.InitializeBalanceRequest{Monto: decimal.NewFromInt(250000)}

	denied := ts.do(t, http.MethodPost, "/api/saldo/inicializar", "vendedor", body)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	denied.Body.Close()

	created := ts.do(t, http.MethodPost, "/api/saldo/inicializar", "admin", body)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	got := decode[dto.BalanceResponse](t, created)
	assert.True(t, got.Monto.Equal(decimal.NewFromInt(250000)))

	again := ts.do(t, http.MethodPost, "/api/saldo/inicializar", "admin", body)
	assert.Equal(t, http.StatusConflict, again.StatusCode)
	again.Body.Close()
}

func TestPostVenta_Validacion400(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", sale(dto.OrderItemRequest{ID: "A", Cantidad: 0}))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "items[0].cantidad", body.Details["field"])

	bad := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", nil)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	bad.Body.Close()
}

func TestPostVenta_ClienteInexistente404(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	resp := ts.do(t, http.MethodPost, "/api/ventas", "vendedor",
		dto.RegisterSaleRequest{ClienteID: "nadie", Items: []dto.OrderItemRequest{{ID: "A", Cantidad: 1}}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostVenta_EscrituraParcial207(t *testing.T) {
	ts := newTestServer(t, serverOpts{sales: brokenSales{}})

	resp := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", sale(dto.OrderItemRequest{ID: "AA", Cantidad: 2}))
	require.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	got := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, orders.WarningPartial, got.Warning)
	assert.NotEmpty(t, got.TransaccionID)
	assert.Equal(t, 8, ts.stock(t, entity.GradeAA))
}

func TestPostVenta_ConflictoConcurrencia503(t *testing.T) {
	ts := newTestServer(t, serverOpts{runner: conflictRunner{}})

	resp := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", sale(dto.OrderItemRequest{ID: "A", Cantidad: 1}))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestPostCompra_SaldoInsuficiente409(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := ts.do(t, http.MethodPost, "/api/compras", "bodeguero", dto.RegisterPurchaseRequest{
		ProveedorID: "prov-1",
		Items:       []dto.OrderItemRequest{{ID: "AA", Cantidad: 10}},
		MedioDePago: entity.PaymentMethodEfectivo,
		Fecha:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_BALANCE", body.Code)
	assert.Equal(t, true, body.Details["advisory"])
	assert.Equal(t, 10, ts.stock(t, entity.GradeAA))
}

func TestPostCompra_Creada(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := ts.do(t, http.MethodPost, "/api/compras", "bodeguero", dto.RegisterPurchaseRequest{
		ProveedorID: "prov-1",
		Items:       []dto.OrderItemRequest{{ID: "A", Cantidad: 4}},
		MedioDePago: entity.PaymentMethodTransferencia,
		Fecha:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	got := decode[dto.PurchaseResponse](t, resp)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(42000)))
	assert.Equal(t, 19, ts.stock(t, entity.GradeA))

	list := decode[[]dto.PurchaseResponse](t, ts.do(t, http.MethodGet, "/api/compras", "bodeguero", nil))
	require.Len(t, list, 1)
	assert.Equal(t, got.TransaccionID, list[0].TransaccionID)

	pdfResp := ts.do(t, http.MethodGet, "/api/compras/"+got.ID+"/pdf", "bodeguero", nil)
	defer pdfResp.Body.Close()
	assert.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Contains(t, pdfResp.Header.Get("Content-Disposition"), "compra_")
}

func TestRegistroDeOrdenes_PorRol(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	compra := dto.RegisterPurchaseRequest{
		ProveedorID: "prov-1",
		Items:       []dto.OrderItemRequest{{ID: "B", Cantidad: 1}},
		MedioDePago: entity.PaymentMethodEfectivo,
		Fecha:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	denied := ts.do(t, http.MethodPost, "/api/compras", "vendedor", compra)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	denied.Body.Close()
	denied = ts.do(t, http.MethodPost, "/api/ventas", "bodeguero", sale(dto.OrderItemRequest{ID: "A", Cantidad: 1}))
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	denied.Body.Close()
	assert.Equal(t, 15, ts.stock(t, entity.GradeA))
	assert.Equal(t, 8, ts.stock(t, entity.GradeB))

	ok := ts.do(t, http.MethodPost, "/api/compras", "admin", compra)
	assert.Equal(t, http.StatusCreated, ok.StatusCode)
	ok.Body.Close()
	ok = ts.do(t, http.MethodPost, "/api/ventas", "admin", sale(dto.OrderItemRequest{ID: "A", Cantidad: 1}))
	assert.Equal(t, http.StatusCreated, ok.StatusCode)
	ok.Body.Close()
}

func TestPostCompra_CantidadFueraDeRango400(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	resp := ts.do(t, http.MethodPost, "/api/compras", "bodeguero", dto.RegisterPurchaseRequest{
		ProveedorID: "prov-1",
		Items:       []dto.OrderItemRequest{{ID: "A", Cantidad: math.MaxInt}, {ID: "A", Cantidad: math.MaxInt}},
		MedioDePago: entity.PaymentMethodEfectivo,
		Fecha:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, 15, ts.stock(t, entity.GradeA))
}

func TestPutPrecio_SoloAdmin(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	body := dto.UpdatePriceRequest{Precio: decimal.NewFromInt(11000)}

	denied := ts.do(t, http.MethodPut, "/api/inventario/A/precio", "vendedor", body)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	denied.Body.Close()

	ok := ts.do(t, http.MethodPut, "/api/inventario/A/precio", "admin", body)
	require.Equal(t, http.StatusOK, ok.StatusCode)
	got := decode[dto.InventoryItemResponse](t, ok)
	assert.True(t, got.Precio.Equal(decimal.NewFromInt(11000)))

	list := decode[[]dto.InventoryItemResponse](t, ts.do(t, http.MethodGet, "/api/inventario", "vendedor", nil))
	assert.Len(t, list, 3)
}

func TestClientes_Duplicado409(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := ts.do(t, http.MethodPost, "/api/clientes", "vendedor", dto.ClienteRequest{Cedula: "1020304050", Nombre: "Otro"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	created := ts.do(t, http.MethodPost, "/api/clientes", "vendedor", dto.ClienteRequest{Cedula: "99", Nombre: "Nuevo"})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	c := decode[dto.ClienteResponse](t, created)

	del := ts.do(t, http.MethodDelete, "/api/clientes/"+c.ID, "vendedor", nil)
	assert.Equal(t, http.StatusNoContent, del.StatusCode)
	del.Body.Close()
}

func TestAPI_SinToken401(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	resp := ts.do(t, http.MethodGet, "/api/saldo", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthYMetrics(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	health := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.StatusCode)
	health.Body.Close()

	venta := ts.do(t, http.MethodPost, "/api/ventas", "vendedor", sale(dto.OrderItemRequest{ID: "A", Cantidad: 1}))
	require.Equal(t, http.StatusCreated, venta.StatusCode)
	venta.Body.Close()

	resp := ts.do(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "huevos_http_requests_total")
	assert.Contains(t, string(raw), `huevos_ledger_finalize_total{kind="venta",result="ok"} 1`)
}
