package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
)

// ProductHandler catálogo: productos, opciones de precio y recetas.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Un stock inicial se registra como entrada en el libro.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProductRequest  true  "name, price, cost, stock, photo"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit   query     int  false  "Límite (default 20)"
// @Param        offset  query     int  false  "Desplazamiento"
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Solo nombre, precio base y foto. Costo y stock cambian vía movimientos.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del producto"
// @Param        body  body      dto.UpdateProductRequest  true  "name?, price?, photo?"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReplacePrices godoc
// @Summary      Reemplazar opciones de precio
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del producto"
// @Param        body  body      dto.ReplacePricesRequest  true  "options (como máximo una is_default)"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/products/{id}/prices [put]
func (h *ProductHandler) ReplacePrices(c *fiber.Ctx) error {
	var in dto.ReplacePricesRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.ReplacePrices(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReplaceRecipe godoc
// @Summary      Reemplazar receta (BOM)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del producto"
// @Param        body  body      dto.ReplaceRecipeRequest  true  "lines (vacío = sin receta)"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse  "RECIPE_CYCLE"
// @Router       /api/products/{id}/recipe [put]
func (h *ProductHandler) ReplaceRecipe(c *fiber.Ctx) error {
	var in dto.ReplaceRecipeRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.ReplaceRecipe(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
