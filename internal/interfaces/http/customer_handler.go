package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
)

// CustomerHandler clientes (necesarios para ventas HUTANG).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCustomerRequest  true  "name, email?, phone?, address?"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
