package entity

import "time"

// Estados de pago de una venta.
const (
	PaymentStatusLunas  = "LUNAS"  // pagada por completo
	PaymentStatusHutang = "HUTANG" // con saldo pendiente
)

// Sale es la cabecera inmutable de una venta confirmada.
type Sale struct {
	ID          string
	Date        string // YYYY-MM-DD
	Total       int64
	CustomerID  string // vacío = venta sin cliente
	AmountPaid  int64
	Change      int64
	Status      string
	Outstanding int64
	DueDate     string // solo si Outstanding > 0
	CreatedAt   time.Time
}

// SaleLine es una línea de la venta. El precio no se guarda por línea:
// los reportes de utilidad usan el HPP vigente del producto.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
}
