package checkout

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// CheckoutUseCase confirma el carrito activo de una sesión como venta inmutable.
// Venta, líneas, salidas de stock y cierre del Room (o vaciado del carrito privado)
// se confirman juntos o no se confirma nada.
type CheckoutUseCase struct {
	carts   *cart.Service
	clock   ports.Clock
	metrics ports.MetricsRecorder
	log     *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(carts *cart.Service, clock ports.Clock, metrics ports.MetricsRecorder, log *logger.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{carts: carts, clock: clock, metrics: metrics, log: log}
}

// Input datos de caja. Date vacía = hoy.
type Input struct {
	Mode       string
	AmountPaid int64
	CustomerID string
	DueDate    string
	Date       string
}

// Result venta confirmada con sus líneas.
type Result struct {
	Sale     *entity.Sale
	Lines    []*entity.SaleLine
	RoomCode string
}

// Checkout Draft → Committed.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, sessionID string, in Input) (*Result, error) {
	if in.Mode != ModeLunas && in.Mode != ModeHutang {
		return nil, domain.ErrInvalidMode
	}
	if in.AmountPaid < 0 {
		return nil, domain.ErrInvalidPrice
	}
	now := uc.clock()
	date, err := domain.NormalizeDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	if in.DueDate != "" {
		if _, err := domain.NormalizeDate(in.DueDate, now); err != nil {
			return nil, err
		}
	}

	var res Result
	err = uc.carts.WithinCart(ctx, sessionID, func(repos repository.Repos, _ *entity.Session, c cart.Cart) error {
		lines, err := c.Lines(ctx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}
		total := cart.ComputeTotals(lines).Total

		if in.CustomerID != "" {
			customer, err := repos.Customers().GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrCustomerNotFound
			}
		}
		st, err := Settle(in.Mode, total, in.AmountPaid, in.CustomerID, in.DueDate)
		if err != nil {
			return err
		}

		sale := &entity.Sale{
			ID:          uuid.New().String(),
			Date:        date,
			Total:       total,
			CustomerID:  in.CustomerID,
			AmountPaid:  in.AmountPaid,
			Change:      st.Change,
			Status:      st.Status,
			Outstanding: st.Outstanding,
			DueDate:     st.DueDate,
			CreatedAt:   now,
		}
		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}
		ref := "SALE-" + sale.ID
		// Orden por producto: checkouts concurrentes bloquean filas en el mismo orden.
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
		for _, l := range lines {
			sl := &entity.SaleLine{ID: uuid.New().String(), SaleID: sale.ID, ProductID: l.ProductID, Quantity: l.Quantity}
			if err := repos.Sales().CreateLine(ctx, sl); err != nil {
				return err
			}
			res.Lines = append(res.Lines, sl)

			product, err := repos.Products().GetForUpdate(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, l.ProductID)
			}
			// Vender sin existencias no es un error: el stock puede quedar negativo.
			if _, err := inventory.Record(ctx, repos, product, inventory.Movement{
				Direction: entity.DirectionOUT,
				Quantity:  l.Quantity,
				Date:      date,
				Note:      "venta",
				Reference: ref,
			}, now); err != nil {
				return err
			}
		}

		res.RoomCode = c.RoomCode()
		res.Sale = sale
		return c.Clear(ctx)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("session_id", sessionID).Str("mode", in.Mode).Msg("checkout revertido")
		return nil, err
	}

	uc.metrics.Checkout(res.Sale.Status, res.Sale.Total)
	for range res.Lines {
		uc.metrics.StockMutation(entity.DirectionOUT)
	}
	if res.RoomCode != "" {
		uc.metrics.RoomClosed("checkout")
	}
	uc.log.Info().
		Str("sale_id", res.Sale.ID).
		Int64("total", res.Sale.Total).
		Str("status", res.Sale.Status).
		Int64("outstanding", res.Sale.Outstanding).
		Str("room", res.RoomCode).
		Msg("venta confirmada")
	return &res, nil
}
