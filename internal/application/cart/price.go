package cart

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ResolvePrice precio unitario de una línea: override manual (> 0), luego la opción indicada
// (debe pertenecer al producto), luego la opción por defecto y por último el precio base.
func ResolvePrice(ctx context.Context, options repository.PriceOptionRepository, product *entity.Product, optionID string, manual int64) (int64, error) {
	if manual < 0 {
		return 0, domain.ErrInvalidPrice
	}
	if manual > 0 {
		return manual, nil
	}
	if optionID != "" {
		opt, err := options.GetByID(ctx, optionID)
		if err != nil {
			return 0, err
		}
		if opt == nil || opt.ProductID != product.ID {
			return 0, domain.ErrPriceOptionNotFound
		}
		return opt.Price, nil
	}
	list, err := options.ListByProduct(ctx, product.ID)
	if err != nil {
		return 0, err
	}
	for _, o := range list {
		if o.IsDefault {
			return o.Price, nil
		}
	}
	return product.Price, nil
}
