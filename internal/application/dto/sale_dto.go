package dto

import "time"

// CheckoutRequest body para POST /api/checkout. mode: LUNAS | HUTANG.
type CheckoutRequest struct {
	Mode       string `json:"mode" validate:"required"`
	AmountPaid int64  `json:"amount_paid"`
	CustomerID string `json:"customer_id,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	Date       string `json:"date,omitempty"`
}

// SaleLineResponse línea de venta con costo aproximado al HPP vigente del producto.
type SaleLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int64  `json:"quantity"`
	UnitCost  int64  `json:"unit_cost"`
	CostTotal int64  `json:"cost_total"`
}

// SaleResponse venta confirmada.
type SaleResponse struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`
	Total       int64              `json:"total"`
	CustomerID  string             `json:"customer_id,omitempty"`
	AmountPaid  int64              `json:"amount_paid"`
	Change      int64              `json:"change"`
	Status      string             `json:"status"`
	Outstanding int64              `json:"outstanding"`
	DueDate     string             `json:"due_date,omitempty"`
	Lines       []SaleLineResponse `json:"lines,omitempty"`
	Profit      *int64             `json:"profit_approx,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SaleListQuery filtros de GET /api/sales.
type SaleListQuery struct {
	DateFrom string `query:"from"`
	DateTo   string `query:"to"`
	Status   string `query:"status"`
	PageRequest
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SalesSummaryResponse resumen de un rango de fechas.
type SalesSummaryResponse struct {
	DateFrom    string `json:"from,omitempty"`
	DateTo      string `json:"to,omitempty"`
	Count       int    `json:"count"`
	Revenue     int64  `json:"revenue"`
	Collected   int64  `json:"collected"`
	Outstanding int64  `json:"outstanding"`
	Profit      int64  `json:"profit_approx"`
}
