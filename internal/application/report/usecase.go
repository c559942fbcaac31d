package report

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/checkout"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ReportUseCase modelos de lectura para reportes: libro de movimientos y ventas.
// La utilidad de una venta se aproxima con el HPP vigente de cada producto, no con el
// costo al momento de la venta (las líneas no guardan precio ni costo).
type ReportUseCase struct {
	repos repository.Repos
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos repository.Repos) *ReportUseCase {
	return &ReportUseCase{repos: repos}
}

// Mutations lista filas del libro filtradas por producto, dirección y rango de fechas.
func (uc *ReportUseCase) Mutations(ctx context.Context, q dto.MutationListQuery) (*dto.MutationListResponse, error) {
	if q.Direction != "" && !entity.IsValidDirection(q.Direction) {
		return nil, domain.ErrInvalidDirection
	}
	if err := validateRange(q.DateFrom, q.DateTo); err != nil {
		return nil, err
	}
	q.DefaultPage()
	list, err := uc.repos.Mutations().List(ctx, repository.MutationFilter{
		ProductID: q.ProductID,
		Direction: q.Direction,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMutationResponse, 0, len(list))
	for _, m := range list {
		items = append(items, inventory.ToMutationResponse(m))
	}
	return &dto.MutationListResponse{Items: items, Page: dto.NewPageResponse(q.PageRequest, len(list))}, nil
}

// Sales lista ventas por rango de fechas y estado, cada una con su utilidad aproximada.
func (uc *ReportUseCase) Sales(ctx context.Context, q dto.SaleListQuery) (*dto.SaleListResponse, error) {
	if err := validateStatus(q.Status); err != nil {
		return nil, err
	}
	if err := validateRange(q.DateFrom, q.DateTo); err != nil {
		return nil, err
	}
	q.DefaultPage()
	list, err := uc.repos.Sales().List(ctx, repository.SaleFilter{
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Status:   q.Status,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, err
	}
	costs := make(map[string]*entity.Product)
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out, err := uc.saleWithLines(ctx, s, costs)
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}
	return &dto.SaleListResponse{Items: items, Page: dto.NewPageResponse(q.PageRequest, len(list))}, nil
}

// Sale detalle de una venta.
func (uc *ReportUseCase) Sale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repos.Sales().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSaleNotFound
	}
	return uc.saleWithLines(ctx, s, make(map[string]*entity.Product))
}

// Summary totales de todas las ventas del rango.
func (uc *ReportUseCase) Summary(ctx context.Context, from, to string) (*dto.SalesSummaryResponse, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	list, err := uc.repos.Sales().List(ctx, repository.SaleFilter{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}
	out := &dto.SalesSummaryResponse{DateFrom: from, DateTo: to, Count: len(list)}
	costs := make(map[string]*entity.Product)
	for _, s := range list {
		detail, err := uc.saleWithLines(ctx, s, costs)
		if err != nil {
			return nil, err
		}
		out.Revenue += s.Total
		out.Outstanding += s.Outstanding
		out.Collected += s.Total - s.Outstanding
		out.Profit += *detail.Profit
	}
	return out, nil
}

func (uc *ReportUseCase) saleWithLines(ctx context.Context, s *entity.Sale, cache map[string]*entity.Product) (*dto.SaleResponse, error) {
	lines, err := uc.repos.Sales().ListLines(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	out := checkout.ToSaleResponse(s)
	var cost int64
	for _, l := range lines {
		p, ok := cache[l.ProductID]
		if !ok {
			if p, err = uc.repos.Products().GetByID(ctx, l.ProductID); err != nil {
				return nil, err
			}
			cache[l.ProductID] = p
		}
		line := dto.SaleLineResponse{ProductID: l.ProductID, Quantity: l.Quantity}
		if p != nil {
			line.Name = p.Name
			line.UnitCost = p.Cost
			line.CostTotal = p.Cost * l.Quantity
		}
		cost += line.CostTotal
		out.Lines = append(out.Lines, line)
	}
	profit := s.Total - cost
	out.Profit = &profit
	return out, nil
}

func validateRange(from, to string) error {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := domain.NormalizeDate(d, time.Time{}); err != nil {
			return err
		}
	}
	if from != "" && to != "" && from > to {
		return domain.ErrInvalidDate
	}
	return nil
}

func validateStatus(status string) error {
	switch status {
	case "", entity.PaymentStatusLunas, entity.PaymentStatusHutang:
		return nil
	}
	return domain.ErrInvalidInput
}
