package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store      *memory.Store
	adjust     *inventory.AdjustStockUseCase
	production *inventory.ProductionUseCase
	reconcile  *inventory.ReconcileUseCase
}

func newFixture() *fixture {
	store := memory.New()
	clock := func() time.Time { return fixedNow }
	log := logger.Nop()
	return &fixture{
		store:      store,
		adjust:     inventory.NewAdjustStockUseCase(store, clock, ports.NoopMetrics{}, log),
		production: inventory.NewProductionUseCase(store, clock, ports.NoopMetrics{}, log),
		reconcile:  inventory.NewReconcileUseCase(store.Repos()),
	}
}

func (f *fixture) product(t *testing.T, id string, price int64) {
	t.Helper()
	require.NoError(t, f.store.Repos().Products().Create(context.Background(), &entity.Product{ID: id, Name: id, Price: price}))
}

func (f *fixture) receive(t *testing.T, id string, qty, cost int64) *entity.StockMutation {
	t.Helper()
	res, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: id, Direction: entity.DirectionIN, Quantity: qty, UnitCost: &cost, ApplyCosting: true,
	})
	require.NoError(t, err)
	return res.Mutation
}

func (f *fixture) recipe(t *testing.T, productID string, lines map[string]string) {
	t.Helper()
	var rl []*entity.RecipeLine
	for ing, qty := range lines {
		rl = append(rl, &entity.RecipeLine{ID: productID + ing, ProductID: productID, IngredientID: ing, QtyPerUnit: decimal.RequireFromString(qty)})
	}
	require.NoError(t, f.store.Repos().Recipes().ReplaceForProduct(context.Background(), productID, rl))
}

func (f *fixture) get(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.store.Repos().Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) assertReconciled(t *testing.T, id string) {
	t.Helper()
	res, err := f.reconcile.Reconcile(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.Consistent, "libro y stock de %s no concilian", id)
}

func TestAdjustStock_EntradaRecalculaHPP(t *testing.T) {
	f := newFixture()
	f.product(t, "gula", 15000)

	m := f.receive(t, "gula", 10, 100)
	assert.Equal(t, int64(10), m.StockAfter)
	assert.Equal(t, "2024-05-10", m.Date)
	assert.Equal(t, int64(100), f.get(t, "gula").Cost)

	f.receive(t, "gula", 10, 200)
	p := f.get(t, "gula")
	assert.Equal(t, int64(20), p.Stock)
	assert.Equal(t, int64(150), p.Cost)
	f.assertReconciled(t, "gula")
}

func TestAdjustStock_EntradaSinCosteoNoCambiaHPP(t *testing.T) {
	f := newFixture()
	f.product(t, "teh", 5000)
	f.receive(t, "teh", 10, 100)

	cost := int64(900)
	res, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: "teh", Direction: entity.DirectionIN, Quantity: 5, UnitCost: &cost, ApplyCosting: false,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), res.Mutation.StockAfter)
	assert.Equal(t, int64(100), f.get(t, "teh").Cost)
}

func TestAdjustStock_SalidaPuedeDejarStockNegativo(t *testing.T) {
	f := newFixture()
	f.product(t, "mie", 3500)
	f.receive(t, "mie", 2, 2000)

	res, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: "mie", Direction: entity.DirectionOUT, Quantity: 5, Note: "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), res.Mutation.StockAfter)
	require.NotNil(t, res.Mutation.UnitCost)
	assert.Equal(t, int64(2000), *res.Mutation.UnitCost)

	p := f.get(t, "mie")
	assert.Equal(t, int64(-3), p.Stock)
	assert.Equal(t, int64(2000), p.Cost, "una salida no cambia el HPP")
	f.assertReconciled(t, "mie")
}

func TestAdjustStock_Validaciones(t *testing.T) {
	f := newFixture()
	f.product(t, "p", 100)
	ctx := context.Background()

	_, err := f.adjust.AdjustStock(ctx, inventory.AdjustInput{ProductID: "p", Direction: "MOVE", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	_, err = f.adjust.AdjustStock(ctx, inventory.AdjustInput{ProductID: "p", Direction: entity.DirectionIN, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.adjust.AdjustStock(ctx, inventory.AdjustInput{ProductID: "p", Direction: entity.DirectionOUT, Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.adjust.AdjustStock(ctx, inventory.AdjustInput{ProductID: "nope", Direction: entity.DirectionIN, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.adjust.AdjustStock(ctx, inventory.AdjustInput{ProductID: "p", Direction: entity.DirectionIN, Quantity: 1, Date: "10/05/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	// Ninguna validación fallida deja filas en el libro.
	rows, err := f.store.Repos().Mutations().List(ctx, repository.MutationFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLedger_UltimaFilaCoincideConStock(t *testing.T) {
	f := newFixture()
	f.product(t, "kopi", 2600)
	ctx := context.Background()

	steps := []struct {
		dir string
		qty int64
	}{
		{entity.DirectionIN, 12}, {entity.DirectionOUT, 5}, {entity.DirectionOUT, 9},
		{entity.DirectionIN, 3}, {entity.DirectionIN, 20}, {entity.DirectionOUT, 1},
	}
	cost := int64(1500)
	var prev int64
	for _, s := range steps {
		res, err := f.adjust.AdjustStock(ctx, inventory.AdjustInput{
			ProductID: "kopi", Direction: s.dir, Quantity: s.qty, UnitCost: &cost, ApplyCosting: true,
		})
		require.NoError(t, err)
		want := prev + s.qty
		if s.dir == entity.DirectionOUT {
			want = prev - s.qty
		}
		assert.Equal(t, want, res.Mutation.StockAfter)
		prev = want
		f.assertReconciled(t, "kopi")
	}
	assert.Equal(t, int64(20), f.get(t, "kopi").Stock)
}

func TestProduce_ConsumeConTechoYCalculaCosto(t *testing.T) {
	f := newFixture()
	f.product(t, "tepung", 0)
	f.product(t, "telur", 0)
	f.product(t, "roti", 17800)
	f.receive(t, "tepung", 20, 100)
	f.receive(t, "telur", 10, 250)
	f.recipe(t, "roti", map[string]string{"tepung": "2.5", "telur": "1"})

	res, err := f.production.Produce(context.Background(), inventory.ProductionInput{ProductID: "roti", Quantity: 3})
	require.NoError(t, err)

	// ceil(3 × 2.5) = 8 (nunca 7); 3 × 1 = 3
	assert.Equal(t, int64(12), f.get(t, "tepung").Stock)
	assert.Equal(t, int64(7), f.get(t, "telur").Stock)
	require.Len(t, res.Consumed, 2)
	for _, m := range res.Consumed {
		assert.Equal(t, entity.DirectionOUT, m.Direction)
		assert.Equal(t, res.Reference, m.Reference)
	}

	// 8×100 + 3×250 = 1550; round(1550/3) = 517
	assert.Equal(t, int64(1550), res.TotalIngredientCost)
	assert.Equal(t, int64(517), res.IncomingUnitCost)
	roti := f.get(t, "roti")
	assert.Equal(t, int64(3), roti.Stock)
	assert.Equal(t, int64(517), roti.Cost)
	assert.Equal(t, int64(3), res.Output.StockAfter)

	// Consumir ingredientes no cambia su HPP.
	assert.Equal(t, int64(100), f.get(t, "tepung").Cost)
	for _, id := range []string{"tepung", "telur", "roti"} {
		f.assertReconciled(t, id)
	}
}

func TestProduce_IngredientesSinCostoUsanCostoActual(t *testing.T) {
	f := newFixture()
	f.product(t, "air", 0)
	f.product(t, "es", 3000)
	f.receive(t, "es", 4, 700)
	f.recipe(t, "es", map[string]string{"air": "1"})

	res, err := f.production.Produce(context.Background(), inventory.ProductionInput{ProductID: "es", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.TotalIngredientCost)
	assert.Equal(t, int64(700), res.IncomingUnitCost)
	es := f.get(t, "es")
	assert.Equal(t, int64(6), es.Stock)
	assert.Equal(t, int64(700), es.Cost)
	// El ingrediente sin stock queda negativo.
	assert.Equal(t, int64(-2), f.get(t, "air").Stock)
}

func TestProduce_Errores(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.product(t, "plain", 1000)
	f.product(t, "a", 0)
	f.product(t, "b", 0)

	_, err := f.production.Produce(ctx, inventory.ProductionInput{ProductID: "plain", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNoRecipe)

	_, err = f.production.Produce(ctx, inventory.ProductionInput{ProductID: "plain", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.production.Produce(ctx, inventory.ProductionInput{ProductID: "ghost", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	f.recipe(t, "a", map[string]string{"b": "1"})
	f.recipe(t, "b", map[string]string{"a": "1"})
	_, err = f.production.Produce(ctx, inventory.ProductionInput{ProductID: "a", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrRecipeCycle)
}

func TestProduce_IngredienteFaltanteNoDejaEscriturasParciales(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.product(t, "kopi", 0)
	f.product(t, "susu", 0)
	f.product(t, "latte", 25000)
	f.receive(t, "kopi", 10, 500)
	f.receive(t, "susu", 10, 300)
	f.recipe(t, "latte", map[string]string{"kopi": "1", "susu": "2", "zzz-hilang": "1"})

	before, err := f.store.Repos().Mutations().List(ctx, repository.MutationFilter{})
	require.NoError(t, err)

	_, err = f.production.Produce(ctx, inventory.ProductionInput{ProductID: "latte", Quantity: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingIngredient)

	after, err := f.store.Repos().Mutations().List(ctx, repository.MutationFilter{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.Equal(t, int64(10), f.get(t, "kopi").Stock)
	assert.Equal(t, int64(10), f.get(t, "susu").Stock)
	assert.Equal(t, int64(0), f.get(t, "latte").Stock)
}

func TestProduce_FalloDeCommitEsConsistencyFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.product(t, "x", 0)
	f.product(t, "y", 0)
	f.receive(t, "x", 5, 100)
	f.recipe(t, "y", map[string]string{"x": "1"})

	f.store.SetCommitHook(func() error { return errors.New("disk full") })
	_, err := f.production.Produce(ctx, inventory.ProductionInput{ProductID: "y", Quantity: 1})
	f.store.SetCommitHook(nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConsistency)
	assert.Equal(t, domain.KindConsistency, domain.KindOf(err))
	assert.Equal(t, int64(5), f.get(t, "x").Stock)
	assert.Equal(t, int64(0), f.get(t, "y").Stock)
}

func TestAdjustStock_EntradaDeFabricadoSeDespachaAProduccion(t *testing.T) {
	f := newFixture()
	f.product(t, "tepung", 0)
	f.product(t, "kue", 10000)
	f.receive(t, "tepung", 10, 100)
	f.recipe(t, "kue", map[string]string{"tepung": "2"})

	cost := int64(99999)
	res, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: "kue", Direction: entity.DirectionIN, Quantity: 2, UnitCost: &cost, ApplyCosting: true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Production)
	assert.Equal(t, res.Production.Output, res.Mutation)
	assert.Equal(t, int64(6), f.get(t, "tepung").Stock)
	// El costo de entrada sale de los ingredientes, no del unit_cost enviado.
	assert.Equal(t, int64(200), f.get(t, "kue").Cost)

	// Una salida de un fabricado no se despacha.
	res, err = f.adjust.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: "kue", Direction: entity.DirectionOUT, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Production)
	assert.Equal(t, int64(6), f.get(t, "tepung").Stock)
}

func TestReconcile_ProductoSinMovimientos(t *testing.T) {
	f := newFixture()
	f.product(t, "nuevo", 100)
	res, err := f.reconcile.Reconcile(context.Background(), "nuevo")
	require.NoError(t, err)
	assert.Nil(t, res.LedgerStock)
	assert.True(t, res.Consistent)

	_, err = f.reconcile.Reconcile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
