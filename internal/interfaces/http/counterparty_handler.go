package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/counterparty"
	"github.com/jhoicas/huevos-kikes-scm/internal/application/dto"
)

// CounterpartyHandler CRUD de clientes y proveedores.
type CounterpartyHandler struct {
	uc *counterparty.UseCase
}

func NewCounterpartyHandler(uc *counterparty.UseCase) *CounterpartyHandler {
	return &CounterpartyHandler{uc: uc}
}

// CreateCliente godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClienteRequest  true  "cédula, nombre y contacto"
// @Success      201  {object}  dto.ClienteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *CounterpartyHandler) CreateCliente(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateCliente(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CounterpartyHandler) ListClientes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.ListClientes(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *CounterpartyHandler) GetCliente(c *fiber.Ctx) error {
	out, err := h.uc.GetCliente(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CounterpartyHandler) UpdateCliente(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateCliente(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CounterpartyHandler) DeleteCliente(c *fiber.Ctx) error {
	if err := h.uc.DeleteCliente(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProveedor godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProveedorRequest  true  "NIT, nombre, contacto y URLs de RUT/Cámara"
// @Success      201  {object}  dto.ProveedorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *CounterpartyHandler) CreateProveedor(c *fiber.Ctx) error {
	var in dto.ProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateProveedor(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CounterpartyHandler) ListProveedores(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.ListProveedores(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *CounterpartyHandler) GetProveedor(c *fiber.Ctx) error {
	out, err := h.uc.GetProveedor(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CounterpartyHandler) UpdateProveedor(c *fiber.Ctx) error {
	var in dto.ProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateProveedor(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CounterpartyHandler) DeleteProveedor(c *fiber.Ctx) error {
	if err := h.uc.DeleteProveedor(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
