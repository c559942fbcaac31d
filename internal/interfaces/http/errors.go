package http

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

var validate = validator.New()

func init() {
	// decimal.Decimal como número para que tags como gt=0 no fallen.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bind parsea el body JSON y aplica las tags validate. Devuelve el cuerpo de error a responder (400) o nil.
func bind(c *fiber.Ctx, dst interface{}) *dto.ErrorResponse {
	if err := c.BodyParser(dst); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if err := validate.Struct(dst); err != nil {
		msg := "datos inválidos"
		if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
			msg = "campo inválido: " + ves[0].Field() + " (" + ves[0].Tag() + ")"
		}
		return &dto.ErrorResponse{Code: "VALIDATION", Message: msg}
	}
	return nil
}

// statusOf traduce la categoría del error de dominio a un código HTTP.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindState:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError escribe dto.ErrorResponse con el código estable del error.
// Los errores sin categoría o de consistencia se registran y no exponen detalles.
func respondError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg := "error interno"
		if domain.KindOf(err) == domain.KindConsistency {
			msg = domain.ErrConsistency.Message
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: domain.CodeOf(err), Message: msg})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: domain.CodeOf(err), Message: err.Error()})
}
