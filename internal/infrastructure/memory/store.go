package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var (
	_ ports.TxRunner   = (*Store)(nil)
	_ repository.Repos = (*Repos)(nil)
)

// Store almacén en memoria del proceso con los mismos puertos que PostgreSQL.
// Las transacciones se serializan (txMu) y trabajan sobre una copia del estado que se
// publica solo si fn termina sin error: el equivalente a Commit/Rollback.
// Pensado para modo desarrollo y tests; no persiste nada.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state

	// commitHook, si no es nil, se evalúa antes de publicar una transacción (tests de rollback).
	commitHook func() error
}

type state struct {
	products     map[string]entity.Product
	productOrder []string
	priceOptions map[string]entity.PriceOption
	recipes      map[string][]entity.RecipeLine
	mutations    []entity.StockMutation
	rooms        []entity.Room
	roomItems    map[string]map[string]entity.RoomItem
	customers    map[string]entity.Customer
	sales        []entity.Sale
	saleLines    map[string][]entity.SaleLine
}

func newState() *state {
	return &state{
		products:     make(map[string]entity.Product),
		priceOptions: make(map[string]entity.PriceOption),
		recipes:      make(map[string][]entity.RecipeLine),
		roomItems:    make(map[string]map[string]entity.RoomItem),
		customers:    make(map[string]entity.Customer),
		saleLines:    make(map[string][]entity.SaleLine),
	}
}

// clone copia el estado. Los slices de solo-inserción se recortan a su capacidad
// para que un append en la copia nunca escriba sobre el arreglo del original.
func (s *state) clone() *state {
	c := &state{
		products:     maps.Clone(s.products),
		productOrder: s.productOrder[:len(s.productOrder):len(s.productOrder)],
		priceOptions: maps.Clone(s.priceOptions),
		recipes:      maps.Clone(s.recipes),
		mutations:    s.mutations[:len(s.mutations):len(s.mutations)],
		rooms:        append([]entity.Room(nil), s.rooms...),
		roomItems:    make(map[string]map[string]entity.RoomItem, len(s.roomItems)),
		customers:    maps.Clone(s.customers),
		sales:        s.sales[:len(s.sales):len(s.sales)],
		saleLines:    make(map[string][]entity.SaleLine, len(s.saleLines)),
	}
	for id, items := range s.roomItems {
		c.roomItems[id] = maps.Clone(items)
	}
	for id, lines := range s.saleLines {
		c.saleLines[id] = lines[:len(lines):len(lines)]
	}
	return c
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// SetCommitHook instala una función evaluada antes de cada commit; si devuelve error la
// transacción se descarta y Run devuelve ese error envuelto.
func (s *Store) SetCommitHook(fn func() error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.commitHook = fn
}

// Run ejecuta fn con repositorios atados a una copia del estado y la publica si no hay error.
// No se debe usar Repos() (fuera de la transacción) para escribir desde dentro de fn.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(&Repos{store: s, tx: work}); err != nil {
		return err
	}
	if s.commitHook != nil {
		if err := s.commitHook(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Repos devuelve repositorios fuera de transacción: lecturas sobre el último estado
// confirmado y escrituras en auto-commit.
func (s *Store) Repos() *Repos {
	return &Repos{store: s}
}

// Repos implementa repository.Repos sobre el Store.
type Repos struct {
	store *Store
	tx    *state
}

func (r *Repos) Products() repository.ProductRepository { return productRepo{r} }
func (r *Repos) PriceOptions() repository.PriceOptionRepository { return priceOptionRepo{r} }
func (r *Repos) Recipes() repository.RecipeRepository { return recipeRepo{r} }
func (r *Repos) Mutations() repository.StockMutationRepository { return mutationRepo{r} }
func (r *Repos) Rooms() repository.RoomRepository { return roomRepo{r} }
func (r *Repos) Customers() repository.CustomerRepository { return customerRepo{r} }
func (r *Repos) Sales() repository.SaleRepository { return saleRepo{r} }

// read ejecuta fn sobre el estado de la transacción o el último confirmado.
func (r *Repos) read(fn func(st *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return fn(r.store.st)
}

// write ejecuta fn sobre el estado de la transacción, o en auto-commit fuera de ella.
func (r *Repos) write(ctx context.Context, fn func(st *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.Run(ctx, func(repos repository.Repos) error {
		return fn(repos.(*Repos).tx)
	})
}
