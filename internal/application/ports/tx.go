package ports

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una única transacción con repositorios atados a ella.
// Si fn devuelve error se hace Rollback; si falla el Commit devuelve un error envuelto.
// Toda lectura y escritura de una acción (agregar al carrito, producción, checkout) pasa por aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// Clock fuente de fecha/hora actual (inyectable en tests).
type Clock func() time.Time
