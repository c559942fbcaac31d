package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
)

// CartHandler carrito activo de la sesión (Room adjunto o carrito privado).
type CartHandler struct {
	carts *cart.Service
}

// NewCartHandler construye el handler.
func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// View godoc
// @Summary      Ver carrito activo
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartViewResponse
// @Failure      409  {object}  dto.ErrorResponse  "ROOM_CLOSED: el room adjunto se cerró; la sesión vuelve al carrito privado"
// @Router       /api/cart [get]
func (h *CartHandler) View(c *fiber.Ctx) error {
	v, err := h.carts.View(c.UserContext(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart.ToViewResponse(v))
}

// Count godoc
// @Summary      Cantidad de unidades en el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartCountResponse
// @Router       /api/cart/count [get]
func (h *CartHandler) Count(c *fiber.Ctx) error {
	n, err := h.carts.Count(c.UserContext(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CartCountResponse{Count: n})
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si la línea existe se suma la cantidad y el precio se reemplaza por el recién resuelto.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddCartItemRequest  true  "product_id, quantity, price_option_id?, manual_price?"
// @Success      200   {object}  dto.CartViewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	err := h.carts.Add(c.UserContext(), GetSessionID(c), cart.AddInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		PriceOptionID: in.PriceOptionID,
		ManualPrice:   in.ManualPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.View(c)
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Description  quantity 0 elimina la línea.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path      string                     true  "ID del producto"
// @Param        body       body      dto.UpdateCartItemRequest  true  "quantity"
// @Success      200        {object}  dto.CartViewResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	if err := h.carts.SetQuantity(c.UserContext(), GetSessionID(c), c.Params("productId"), in.Quantity); err != nil {
		return respondError(c, err)
	}
	return h.View(c)
}

// SetPrice godoc
// @Summary      Cambiar precio unitario de una línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path      string                   true  "ID del producto"
// @Param        body       body      dto.SetCartPriceRequest  true  "price"
// @Success      200        {object}  dto.CartViewResponse
// @Failure      404        {object}  dto.ErrorResponse  "LINE_NOT_FOUND"
// @Router       /api/cart/items/{productId}/price [put]
func (h *CartHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.SetCartPriceRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	if err := h.carts.SetPrice(c.UserContext(), GetSessionID(c), c.Params("productId"), in.Price); err != nil {
		return respondError(c, err)
	}
	return h.View(c)
}

// RemoveItem godoc
// @Summary      Quitar línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path      string  true  "ID del producto"
// @Success      200        {object}  dto.CartViewResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.carts.Remove(c.UserContext(), GetSessionID(c), c.Params("productId")); err != nil {
		return respondError(c, err)
	}
	return h.View(c)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Description  Si la sesión está en un Room, el Room se cierra definitivamente.
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.carts.Clear(c.UserContext(), GetSessionID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
