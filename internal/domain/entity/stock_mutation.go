package entity

import "time"

// Direcciones de movimiento de stock.
const (
	DirectionIN  = "IN"  // entrada
	DirectionOUT = "OUT" // salida
)

// StockMutation es una fila inmutable del libro de movimientos.
// StockAfter es la existencia resultante del producto tras aplicar el movimiento;
// la última fila de cada producto debe coincidir con Product.Stock.
type StockMutation struct {
	ID         string
	ProductID  string
	Direction  string
	Quantity   int64  // siempre positiva
	Date       string // YYYY-MM-DD (orden lexicográfico = cronológico)
	UnitCost   *int64
	Note       string
	Reference  string
	StockAfter int64
	CreatedAt  time.Time
}

// IsValidDirection indica si d es IN u OUT.
func IsValidDirection(d string) bool {
	return d == DirectionIN || d == DirectionOUT
}
