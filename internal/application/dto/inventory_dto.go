package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/movements.
// apply_costing omitido = true cuando viene unit_cost en una entrada.
type AdjustStockRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Direction    string `json:"direction" validate:"required"`
	Quantity     int64  `json:"quantity"`
	Date         string `json:"date,omitempty"`
	Note         string `json:"note,omitempty" validate:"max=500"`
	Reference    string `json:"reference,omitempty" validate:"max=100"`
	UnitCost     *int64 `json:"unit_cost,omitempty"`
	ApplyCosting *bool  `json:"apply_costing,omitempty"`
}

// ProductionRequest body para POST /api/inventory/production.
type ProductionRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity"`
	Date      string `json:"date,omitempty"`
	Note      string `json:"note,omitempty" validate:"max=500"`
	Reference string `json:"reference,omitempty" validate:"max=100"`
}

// StockMutationResponse fila del libro de movimientos.
type StockMutationResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Direction  string    `json:"direction"`
	Quantity   int64     `json:"quantity"`
	Date       string    `json:"date"`
	UnitCost   *int64    `json:"unit_cost,omitempty"`
	Note       string    `json:"note,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	StockAfter int64     `json:"stock_after"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProductionResponse resultado de una corrida de producción.
type ProductionResponse struct {
	ProductID           string                  `json:"product_id"`
	Quantity            int64                   `json:"quantity"`
	Reference           string                  `json:"reference"`
	TotalIngredientCost int64                   `json:"total_ingredient_cost"`
	IncomingUnitCost    int64                   `json:"incoming_unit_cost"`
	NewCost             int64                   `json:"new_cost"`
	Consumed            []StockMutationResponse `json:"consumed"`
	Output              StockMutationResponse   `json:"output"`
}

// AdjustStockResponse salida de adjustStock; production presente si se despachó a producción.
type AdjustStockResponse struct {
	Mutation   StockMutationResponse `json:"mutation"`
	Production *ProductionResponse   `json:"production,omitempty"`
}

// MutationListQuery filtros de GET /api/inventory/movements.
type MutationListQuery struct {
	ProductID string `query:"product_id"`
	Direction string `query:"direction"`
	DateFrom  string `query:"from"`
	DateTo    string `query:"to"`
	PageRequest
}

// MutationListResponse lista paginada del libro.
type MutationListResponse struct {
	Items []StockMutationResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReconcileResponse comparación stock vs. libro.
type ReconcileResponse struct {
	ProductID   string `json:"product_id"`
	Stock       int64  `json:"stock"`
	LedgerStock *int64 `json:"ledger_stock"`
	Consistent  bool   `json:"consistent"`
}

// RecipeLineInput línea de receta (cantidad fraccionaria por unidad).
type RecipeLineInput struct {
	IngredientID string          `json:"ingredient_id" validate:"required"`
	QtyPerUnit   decimal.Decimal `json:"qty_per_unit"`
}

// ReplaceRecipeRequest body para PUT /api/products/:id/recipe (reemplazo completo; vacío = sin receta).
type ReplaceRecipeRequest struct {
	Lines []RecipeLineInput `json:"lines" validate:"dive"`
}

// RecipeLineResponse línea de receta.
type RecipeLineResponse struct {
	IngredientID string          `json:"ingredient_id"`
	QtyPerUnit   decimal.Decimal `json:"qty_per_unit"`
}
