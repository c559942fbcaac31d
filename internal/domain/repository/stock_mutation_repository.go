package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// MutationFilter filtros para consultar el libro de movimientos. Campos vacíos = sin filtro.
// DateFrom/DateTo son inclusivos y comparan cadenas YYYY-MM-DD.
type MutationFilter struct {
	ProductID string
	Direction string
	DateFrom  string
	DateTo    string
	Limit     int
	Offset    int
}

// StockMutationRepository define el puerto del libro de movimientos (solo inserción).
type StockMutationRepository interface {
	Create(ctx context.Context, mutation *entity.StockMutation) error
	// LastByProduct devuelve la fila más reciente del producto o nil.
	LastByProduct(ctx context.Context, productID string) (*entity.StockMutation, error)
	// List devuelve filas ordenadas por fecha y orden de inserción.
	List(ctx context.Context, filter MutationFilter) ([]*entity.StockMutation, error)
}
