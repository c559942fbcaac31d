package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/report"
)

// SalesHandler reportes de ventas.
type SalesHandler struct {
	reports *report.ReportUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(reports *report.ReportUseCase) *SalesHandler {
	return &SalesHandler{reports: reports}
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        from    query     string  false  "YYYY-MM-DD"
// @Param        to      query     string  false  "YYYY-MM-DD"
// @Param        status  query     string  false  "LUNAS | HUTANG"
// @Param        limit   query     int     false  "Límite (default 20)"
// @Param        offset  query     int     false  "Desplazamiento"
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var q dto.SaleListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.reports.Sales(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de venta
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.reports.Sale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de ventas por rango
// @Tags         sales
// @Produce      json
// @Param        from  query     string  false  "YYYY-MM-DD"
// @Param        to    query     string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.SalesSummaryResponse
// @Router       /api/sales/summary [get]
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	out, err := h.reports.Summary(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
