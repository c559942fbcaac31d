package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/pkg/jwt"
)

// SessionHandler emite tokens de sesión de terminal.
type SessionHandler struct {
	secret     string
	issuer     string
	expMinutes int
}

// NewSessionHandler construye el handler.
func NewSessionHandler(secret, issuer string, expMinutes int) *SessionHandler {
	return &SessionHandler{secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Create godoc
// @Summary      Abrir sesión de terminal
// @Description  Devuelve un token cuyo claim es un session_id nuevo; se envía como Bearer en carrito, rooms y checkout.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSessionRequest  false  "terminal_id opcional"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if e := bind(c, &in); e != nil {
			return c.Status(fiber.StatusBadRequest).JSON(e)
		}
	}
	sessionID := uuid.New().String()
	token, err := jwt.Generate(h.secret, sessionID, in.TerminalID, h.issuer, h.expMinutes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(time.Duration(h.expMinutes) * time.Minute).UTC(),
	})
}
