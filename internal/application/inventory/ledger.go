package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/inventory"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// Movement datos de un movimiento a registrar en el libro. Date ya normalizada (YYYY-MM-DD).
type Movement struct {
	Direction    string
	Quantity     int64
	Date         string
	Note         string
	Reference    string
	UnitCost     *int64
	ApplyCosting bool // solo IN: recalcula el HPP con UnitCost
}

// Record aplica un movimiento dentro de la transacción de repos: calcula el stock resultante
// (OUT puede dejarlo negativo), recalcula el HPP en entradas con costeo, persiste stock/costo
// del producto y agrega la fila inmutable al libro con StockAfter.
// product debe haberse leído con GetForUpdate en la misma transacción; se actualiza en memoria.
func Record(ctx context.Context, repos repository.Repos, product *entity.Product, m Movement, now time.Time) (*entity.StockMutation, error) {
	if !entity.IsValidDirection(m.Direction) {
		return nil, domain.ErrInvalidDirection
	}
	if m.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if m.UnitCost != nil && *m.UnitCost < 0 {
		return nil, domain.ErrInvalidPrice
	}

	newStock := product.Stock
	newCost := product.Cost
	unitCost := m.UnitCost
	switch m.Direction {
	case entity.DirectionIN:
		newStock += m.Quantity
		if m.ApplyCosting && unitCost != nil {
			newCost = inventory.CostCalculator(product.Stock, product.Cost, m.Quantity, *unitCost)
		}
	case entity.DirectionOUT:
		newStock -= m.Quantity
		// Las salidas se valorizan al HPP vigente; el costo del producto no cambia.
		if unitCost == nil {
			c := product.Cost
			unitCost = &c
		}
	}

	if err := repos.Products().UpdateStockAndCost(ctx, product.ID, newStock, newCost); err != nil {
		return nil, err
	}
	mut := &entity.StockMutation{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		Direction:  m.Direction,
		Quantity:   m.Quantity,
		Date:       m.Date,
		UnitCost:   unitCost,
		Note:       m.Note,
		Reference:  m.Reference,
		StockAfter: newStock,
		CreatedAt:  now,
	}
	if err := repos.Mutations().Create(ctx, mut); err != nil {
		return nil, err
	}
	product.Stock = newStock
	product.Cost = newCost
	product.UpdatedAt = now
	return mut, nil
}
