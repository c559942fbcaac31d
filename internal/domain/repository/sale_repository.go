package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// SaleFilter filtros de ventas para reportes. DateFrom/DateTo inclusivos (YYYY-MM-DD).
type SaleFilter struct {
	DateFrom string
	DateTo   string
	Status   string
	Limit    int
	Offset   int
}

// SaleRepository persiste ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error)
	// List ordena de la venta más reciente a la más antigua.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
