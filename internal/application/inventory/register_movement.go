package inventory

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// AdjustStockFromRequest adapta el request HTTP al caso de uso AdjustStock(ctx, AdjustInput).
func (uc *AdjustStockUseCase) AdjustStockFromRequest(ctx context.Context, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	applyCosting := in.UnitCost != nil
	if in.ApplyCosting != nil {
		applyCosting = *in.ApplyCosting
	}
	res, err := uc.AdjustStock(ctx, AdjustInput{
		ProductID:    in.ProductID,
		Direction:    in.Direction,
		Quantity:     in.Quantity,
		Date:         in.Date,
		Note:         in.Note,
		Reference:    in.Reference,
		UnitCost:     in.UnitCost,
		ApplyCosting: applyCosting,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.AdjustStockResponse{Mutation: ToMutationResponse(res.Mutation)}
	if res.Production != nil {
		out.Production = ToProductionResponse(res.Production)
	}
	return out, nil
}

// ProduceFromRequest adapta el request HTTP al caso de uso Produce.
func (uc *ProductionUseCase) ProduceFromRequest(ctx context.Context, in dto.ProductionRequest) (*dto.ProductionResponse, error) {
	res, err := uc.Produce(ctx, ProductionInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Date:      in.Date,
		Note:      in.Note,
		Reference: in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return ToProductionResponse(res), nil
}

// ToMutationResponse mapea una fila del libro.
func ToMutationResponse(m *entity.StockMutation) dto.StockMutationResponse {
	return dto.StockMutationResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Direction:  m.Direction,
		Quantity:   m.Quantity,
		Date:       m.Date,
		UnitCost:   m.UnitCost,
		Note:       m.Note,
		Reference:  m.Reference,
		StockAfter: m.StockAfter,
		CreatedAt:  m.CreatedAt,
	}
}

// ToProductionResponse mapea el resultado de producción.
func ToProductionResponse(r *ProductionResult) *dto.ProductionResponse {
	consumed := make([]dto.StockMutationResponse, 0, len(r.Consumed))
	for _, m := range r.Consumed {
		consumed = append(consumed, ToMutationResponse(m))
	}
	return &dto.ProductionResponse{
		ProductID:           r.ProductID,
		Quantity:            r.Quantity,
		Reference:           r.Reference,
		TotalIngredientCost: r.TotalIngredientCost,
		IncomingUnitCost:    r.IncomingUnitCost,
		NewCost:             r.NewCost,
		Consumed:            consumed,
		Output:              ToMutationResponse(r.Output),
	}
}
