package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/checkout"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
)

// CheckoutHandler confirma el carrito como venta.
type CheckoutHandler struct {
	uc *checkout.CheckoutUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Checkout godoc
// @Summary      Cobrar el carrito activo
// @Description  LUNAS exige amount_paid >= total. HUTANG exige customer_id; si se paga todo queda LUNAS.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CheckoutRequest  true  "mode, amount_paid, customer_id?, due_date?"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "EMPTY_CART, INSUFFICIENT_PAYMENT, CUSTOMER_REQUIRED, ROOM_CLOSED"
// @Failure      500   {object}  dto.ErrorResponse  "CONSISTENCY_FAILURE: nada se confirmó"
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.CheckoutFromRequest(c.UserContext(), GetSessionID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
