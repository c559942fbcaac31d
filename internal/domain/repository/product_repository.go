package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update no toca Cost ni Stock: esos solo cambian vía el libro de movimientos.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStockAndCost(ctx context.Context, id string, stock, cost int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}

// PriceOptionRepository persiste las variantes de precio de un producto.
type PriceOptionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PriceOption, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.PriceOption, error)
	ReplaceForProduct(ctx context.Context, productID string, options []*entity.PriceOption) error
}

// RecipeRepository persiste el BOM de los productos fabricados.
type RecipeRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error)
	ReplaceForProduct(ctx context.Context, productID string, lines []*entity.RecipeLine) error
}
