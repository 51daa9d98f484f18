package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/orders"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/receipts"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
)

// OrderHandler ventas y compras: registro, consulta y comprobantes.
type OrderHandler struct {
	checkout *orders.CheckoutUseCase
	query    *orders.QueryUseCase
	receipts *receipts.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(checkout *orders.CheckoutUseCase, query *orders.QueryUseCase, receipts *receipts.UseCase) *OrderHandler {
	return &OrderHandler{checkout: checkout, query: query, receipts: receipts}
}

func seller(c *fiber.Ctx) orders.Seller {
	return orders.Seller{UserID: GetUserID(c), Email: GetEmail(c)}
}

// RegisterSale godoc
// @Summary      Registrar venta
// @Description  Descuenta stock, suma al saldo y registra la transacción en un solo paso atómico.
//
//	Si la transacción se confirma pero el documento de venta no se guarda responde 207 con warning.
//
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "cliente_id e items"
// @Success      201  {object}  dto.SaleResponse
// @Success      207  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      412  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *OrderHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	resp, err := h.checkout.RegisterSale(c.UserContext(), seller(c), in)
	if err != nil {
		if resp != nil && errors.Is(err, domain.ErrSecondaryWrite) {
			c.Locals(LocalError, err)
			return c.Status(fiber.StatusMultiStatus).JSON(resp)
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterPurchase godoc
// @Summary      Registrar compra
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPurchaseRequest  true  "proveedor_id, items, medio_de_pago, fecha (RFC 3339)"
// @Success      201  {object}  dto.PurchaseResponse
// @Success      207  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *OrderHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	resp, err := h.checkout.RegisterPurchase(c.UserContext(), seller(c), in)
	if err != nil {
		if resp != nil && errors.Is(err, domain.ErrSecondaryWrite) {
			c.Locals(LocalError, err)
			return c.Status(fiber.StatusMultiStatus).JSON(resp)
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *OrderHandler) ListSales(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.query.ListSales(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *OrderHandler) GetSale(c *fiber.Ctx) error {
	s, err := h.query.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

func (h *OrderHandler) ListPurchases(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.query.ListPurchases(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *OrderHandler) GetPurchase(c *fiber.Ctx) error {
	p, err := h.query.GetPurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// SaleReceipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pdf [get]
func (h *OrderHandler) SaleReceipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.SaleReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf, filename)
}

func (h *OrderHandler) PurchaseReceipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.PurchaseReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf, filename)
}

func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
