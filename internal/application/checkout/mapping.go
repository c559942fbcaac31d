package checkout

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// CheckoutFromRequest adapta el request HTTP al caso de uso Checkout.
func (uc *CheckoutUseCase) CheckoutFromRequest(ctx context.Context, sessionID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	res, err := uc.Checkout(ctx, sessionID, Input{
		Mode:       in.Mode,
		AmountPaid: in.AmountPaid,
		CustomerID: in.CustomerID,
		DueDate:    in.DueDate,
		Date:       in.Date,
	})
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(res.Sale)
	for _, l := range res.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out, nil
}

// ToSaleResponse mapea la cabecera de una venta.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:          s.ID,
		Date:        s.Date,
		Total:       s.Total,
		CustomerID:  s.CustomerID,
		AmountPaid:  s.AmountPaid,
		Change:      s.Change,
		Status:      s.Status,
		Outstanding: s.Outstanding,
		DueDate:     s.DueDate,
		CreatedAt:   s.CreatedAt,
	}
}
