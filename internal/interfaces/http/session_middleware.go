package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/pkg/jwt"
)

// Locals keys para la sesión de terminal en Fiber.
const (
	LocalSessionID  = "session_id"
	LocalTerminalID = "terminal_id"
)

// SessionMiddleware valida el Bearer Token de sesión y deja SessionID y TerminalID en c.Locals.
// El token no autoriza: solo identifica qué carrito pertenece a qué terminal.
func SessionMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		sessionID, terminalID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalTerminalID, terminalID)
		return c.Next()
	}
}

// GetSessionID devuelve el SessionID del contexto (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

// GetTerminalID devuelve el TerminalID del contexto (puede ser vacío).
func GetTerminalID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTerminalID).(string)
	return s
}
