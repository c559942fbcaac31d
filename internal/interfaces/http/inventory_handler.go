package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/report"
)

// InventoryHandler movimientos de stock, producción y consultas del libro.
type InventoryHandler struct {
	adjust     *inventory.AdjustStockUseCase
	production *inventory.ProductionUseCase
	reconcile  *inventory.ReconcileUseCase
	reports    *report.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, production *inventory.ProductionUseCase, reconcile *inventory.ReconcileUseCase, reports *report.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, production: production, reconcile: reconcile, reports: reports}
}

// AdjustStock godoc
// @Summary      Registrar movimiento de stock
// @Description  Una entrada (IN) de un producto con receta se resuelve como producción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdjustStockRequest  true  "product_id, direction, quantity, unit_cost? (entradas), apply_costing?"
// @Success      201   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.adjust.AdjustStockFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Produce godoc
// @Summary      Producir según receta (BOM)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ProductionRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      404   {object}  dto.ErrorResponse  "PRODUCT_NOT_FOUND, MISSING_INGREDIENT"
// @Failure      409   {object}  dto.ErrorResponse  "NO_RECIPE, RECIPE_CYCLE"
// @Router       /api/inventory/production [post]
func (h *InventoryHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.production.ProduceFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Libro de movimientos
// @Tags         inventory
// @Produce      json
// @Param        product_id  query     string  false  "Producto"
// @Param        direction   query     string  false  "IN | OUT"
// @Param        from        query     string  false  "YYYY-MM-DD"
// @Param        to          query     string  false  "YYYY-MM-DD"
// @Param        limit       query     int     false  "Límite (default 20)"
// @Param        offset      query     int     false  "Desplazamiento"
// @Success      200         {object}  dto.MutationListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MutationListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.reports.Mutations(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar stock con el libro
// @Tags         inventory
// @Produce      json
// @Param        productId  path      string  true  "ID del producto"
// @Success      200        {object}  dto.ReconcileResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile/{productId} [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	res, err := h.reconcile.Reconcile(c.UserContext(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:   res.ProductID,
		Stock:       res.Stock,
		LedgerStock: res.LedgerStock,
		Consistent:  res.Consistent,
	})
}
