package inventory

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// AdjustStockUseCase registra entradas y salidas manuales de stock.
// Una entrada (IN) sobre un producto con receta se despacha a producción:
// el llamador no necesita saber si el producto es fabricado.
type AdjustStockUseCase struct {
	txRunner ports.TxRunner
	clock    ports.Clock
	metrics  ports.MetricsRecorder
	log      *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner ports.TxRunner, clock ports.Clock, metrics ports.MetricsRecorder, log *logger.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, clock: clock, metrics: metrics, log: log}
}

// AdjustInput entrada de AdjustStock. UnitCost y ApplyCosting solo aplican a IN.
type AdjustInput struct {
	ProductID    string
	Direction    string
	Quantity     int64
	Date         string
	Note         string
	Reference    string
	UnitCost     *int64
	ApplyCosting bool
}

// AdjustResult resultado: la fila del libro del producto y, si hubo despacho, la producción completa.
type AdjustResult struct {
	Mutation   *entity.StockMutation
	Production *ProductionResult
}

// AdjustStock valida, bloquea el producto (SELECT FOR UPDATE) y registra el movimiento,
// todo en una transacción.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidDirection(in.Direction) {
		return nil, domain.ErrInvalidDirection
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost != nil && *in.UnitCost < 0 {
		return nil, domain.ErrInvalidPrice
	}
	now := uc.clock()
	date, err := domain.NormalizeDate(in.Date, now)
	if err != nil {
		return nil, err
	}

	var res AdjustResult
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if in.Direction == entity.DirectionIN {
			lines, err := repos.Recipes().ListByProduct(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if len(lines) > 0 {
				pr, err := produce(ctx, repos, ProductionInput{
					ProductID: in.ProductID,
					Quantity:  in.Quantity,
					Date:      date,
					Note:      in.Note,
					Reference: in.Reference,
				}, lines, now)
				if err != nil {
					return err
				}
				res.Production = pr
				res.Mutation = pr.Output
				return nil
			}
		}

		product, err := repos.Products().GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		mut, err := Record(ctx, repos, product, Movement{
			Direction:    in.Direction,
			Quantity:     in.Quantity,
			Date:         date,
			Note:         in.Note,
			Reference:    in.Reference,
			UnitCost:     in.UnitCost,
			ApplyCosting: in.ApplyCosting,
		}, now)
		if err != nil {
			return err
		}
		res.Mutation = mut
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", in.ProductID).Str("direction", in.Direction).Msg("ajuste de stock revertido")
		return nil, domain.Consistency(err)
	}

	if res.Production != nil {
		uc.metrics.ProductionRun(len(res.Production.Consumed))
		for range res.Production.Consumed {
			uc.metrics.StockMutation(entity.DirectionOUT)
		}
	}
	uc.metrics.StockMutation(res.Mutation.Direction)
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("direction", res.Mutation.Direction).
		Int64("quantity", res.Mutation.Quantity).
		Int64("stock_after", res.Mutation.StockAfter).
		Bool("production", res.Production != nil).
		Msg("movimiento de stock registrado")
	return &res, nil
}
