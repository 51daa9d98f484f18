package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/treasury"
)

// TreasuryHandler saldo y libro de transacciones.
type TreasuryHandler struct {
	uc *treasury.UseCase
}

func NewTreasuryHandler(uc *treasury.UseCase) *TreasuryHandler {
	return &TreasuryHandler{uc: uc}
}

// GetBalance godoc
// @Summary      Saldo en caja
// @Tags         tesoreria
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceResponse
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/saldo [get]
func (h *TreasuryHandler) GetBalance(c *fiber.Ctx) error {
	b, err := h.uc.GetBalance(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(b)
}

// InitializeBalance godoc
// @Summary      Inicializar saldo en caja (admin, una sola vez)
// @Tags         tesoreria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitializeBalanceRequest  true  "monto inicial"
// @Success      201  {object}  dto.BalanceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/saldo/inicializar [post]
func (h *TreasuryHandler) InitializeBalance(c *fiber.Ctx) error {
	var in dto.InitializeBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.InitializeBalance(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// ListTransactions godoc
// @Summary      Libro de transacciones, más reciente primero
// @Tags         tesoreria
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transacciones [get]
func (h *TreasuryHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.ListTransactions(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
