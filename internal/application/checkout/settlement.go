package checkout

import (
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// Modos de pago elegidos en caja.
const (
	ModeLunas  = entity.PaymentStatusLunas
	ModeHutang = entity.PaymentStatusHutang
)

// Settlement resultado del cobro.
type Settlement struct {
	Status      string
	Change      int64
	Outstanding int64
	DueDate     string
}

// Settle aplica las reglas LUNAS/HUTANG. Una venta HUTANG pagada por completo queda LUNAS;
// la fecha de vencimiento solo se conserva si queda saldo pendiente.
func Settle(mode string, total, amountPaid int64, customerID, dueDate string) (Settlement, error) {
	if amountPaid < 0 || total < 0 {
		return Settlement{}, domain.ErrInvalidPrice
	}
	switch mode {
	case ModeLunas:
		if amountPaid < total {
			return Settlement{}, domain.ErrInsufficientPayment
		}
		return Settlement{Status: entity.PaymentStatusLunas, Change: amountPaid - total}, nil
	case ModeHutang:
		if customerID == "" {
			return Settlement{}, domain.ErrCustomerRequired
		}
		if amountPaid >= total {
			return Settlement{Status: entity.PaymentStatusLunas, Change: amountPaid - total}, nil
		}
		return Settlement{
			Status:      entity.PaymentStatusHutang,
			Outstanding: total - amountPaid,
			DueDate:     dueDate,
		}, nil
	default:
		return Settlement{}, domain.ErrInvalidMode
	}
}
