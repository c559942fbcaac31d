package inventory

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ReconcileUseCase compara el stock del producto con la última fila del libro.
type ReconcileUseCase struct {
	repos repository.Repos
}

// NewReconcileUseCase construye el caso de uso (lecturas fuera de transacción).
func NewReconcileUseCase(repos repository.Repos) *ReconcileUseCase {
	return &ReconcileUseCase{repos: repos}
}

// ReconcileResult LedgerStock es nil si el producto no tiene movimientos (se espera stock 0).
type ReconcileResult struct {
	ProductID   string
	Stock       int64
	LedgerStock *int64
	Consistent  bool
}

// Reconcile verifica que stock_after de la última fila coincida con Product.Stock.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, productID string) (*ReconcileResult, error) {
	product, err := uc.repos.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	last, err := uc.repos.Mutations().LastByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	res := &ReconcileResult{ProductID: productID, Stock: product.Stock}
	if last == nil {
		res.Consistent = product.Stock == 0
		return res, nil
	}
	after := last.StockAfter
	res.LedgerStock = &after
	res.Consistent = after == product.Stock
	return res, nil
}
