package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/inventory"
)

// InventoryHandler consulta de inventario y precios.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar inventario por grado
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListInventory(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener un grado
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        grade  path  string  true  "A | AA | B"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/{grade} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	it, err := h.uc.GetItem(c.UserContext(), c.Params("grade"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(it)
}

// UpdatePrice godoc
// @Summary      Cambiar el precio de un grado (admin)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        grade  path  string                  true  "A | AA | B"
// @Param        body   body  dto.UpdatePriceRequest  true  "nuevo precio"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventario/{grade}/precio [put]
func (h *InventoryHandler) UpdatePrice(c *fiber.Ctx) error {
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	it, err := h.uc.UpdatePrice(c.UserContext(), c.Params("grade"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(it)
}
