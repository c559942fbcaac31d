package cart

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// Totals agregados del carrito.
type Totals struct {
	Total  int64 // Σ precio × cantidad
	Profit int64 // Σ max(0, precio − HPP) × cantidad
	Count  int64 // Σ cantidad
}

// ComputeTotals suma el carrito. La utilidad potencial se acota a cero por línea:
// una línea vendida bajo costo aporta 0, no un valor negativo.
func ComputeTotals(lines []entity.CartLine) Totals {
	var t Totals
	for _, l := range lines {
		t.Total += l.Price * l.Quantity
		if margin := l.Price - l.Cost; margin > 0 {
			t.Profit += margin * l.Quantity
		}
		t.Count += l.Quantity
	}
	return t
}
