package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var (
	_ ports.TxRunner   = (*TxRunner)(nil)
	_ repository.Repos = (*Repos)(nil)
)

// Repos agrupa los repositorios sobre un mismo Querier (pool o tx).
type Repos struct {
	q Querier
}

// NewRepos construye los repositorios sobre q. Con el pool cada sentencia se confirma sola.
func NewRepos(q Querier) *Repos {
	return &Repos{q: q}
}

func (r *Repos) Products() repository.ProductRepository         { return NewProductRepository(r.q) }
func (r *Repos) PriceOptions() repository.PriceOptionRepository { return NewPriceOptionRepository(r.q) }
func (r *Repos) Recipes() repository.RecipeRepository           { return NewRecipeRepository(r.q) }
func (r *Repos) Mutations() repository.StockMutationRepository  { return NewStockMutationRepository(r.q) }
func (r *Repos) Rooms() repository.RoomRepository               { return NewRoomRepository(r.q) }
func (r *Repos) Customers() repository.CustomerRepository       { return NewCustomerRepository(r.q) }
func (r *Repos) Sales() repository.SaleRepository               { return NewSaleRepository(r.q) }

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
