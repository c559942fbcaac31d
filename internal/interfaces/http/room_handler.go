package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
)

// RoomHandler ciclo de vida de los Rooms compartidos.
type RoomHandler struct {
	carts *cart.Service
}

// NewRoomHandler construye el handler.
func NewRoomHandler(carts *cart.Service) *RoomHandler {
	return &RoomHandler{carts: carts}
}

// Create godoc
// @Summary      Crear Room y adjuntarlo a la sesión
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.RoomResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	room, err := h.carts.NewRoom(c.UserContext(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cart.ToRoomResponse(room, 0))
}

// List godoc
// @Summary      Listar Rooms abiertos y cerrados
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoomListResponse
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
	open, closed, err := h.carts.ListRooms(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart.ToRoomListResponse(open, closed))
}

// Switch godoc
// @Summary      Adjuntar la sesión a un Room abierto
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        code  path      string  true  "Código del Room"
// @Success      200   {object}  dto.CartViewResponse
// @Failure      404   {object}  dto.ErrorResponse  "ROOM_NOT_FOUND: inexistente o cerrado"
// @Router       /api/rooms/{code}/switch [post]
func (h *RoomHandler) Switch(c *fiber.Ctx) error {
	if _, err := h.carts.SwitchRoom(c.UserContext(), GetSessionID(c), c.Params("code")); err != nil {
		return respondError(c, err)
	}
	v, err := h.carts.View(c.UserContext(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart.ToViewResponse(v))
}

// Detach godoc
// @Summary      Salir del Room sin cerrarlo
// @Tags         rooms
// @Security     Bearer
// @Success      204
// @Router       /api/rooms/detach [post]
func (h *RoomHandler) Detach(c *fiber.Ctx) error {
	if err := h.carts.DetachRoom(c.UserContext(), GetSessionID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
