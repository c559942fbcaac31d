package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

type fixture struct {
	store    *memory.Store
	sessions *memory.SessionStore
	svc      *cart.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	sessions := memory.NewSessionStore(time.Hour)
	svc := cart.NewService(cart.Config{
		TxRunner:       store,
		Repos:          store.Repos(),
		Sessions:       sessions,
		Clock:          time.Now,
		Metrics:        ports.NoopMetrics{},
		Logger:         logger.Nop(),
		RoomCodeLength: 6,
	})
	f := &fixture{store: store, sessions: sessions, svc: svc}
	ctx := context.Background()
	for _, p := range []entity.Product{
		{ID: "kopi", Name: "Kopi", Price: 5000, Cost: 3000, Stock: 10},
		{ID: "teh", Name: "Teh", Price: 4000, Cost: 4500, Stock: 3},
		{ID: "gula", Name: "Gula", Price: 17400, Cost: 15000},
	} {
		p := p
		require.NoError(t, store.Repos().Products().Create(ctx, &p))
	}
	require.NoError(t, store.Repos().PriceOptions().ReplaceForProduct(ctx, "kopi", []*entity.PriceOption{
		{ID: "kopi-grosir", ProductID: "kopi", Label: "Grosir", Price: 4500},
		{ID: "kopi-promo", ProductID: "kopi", Label: "Promo", Price: 4800, IsDefault: true},
	}))
	require.NoError(t, store.Repos().PriceOptions().ReplaceForProduct(ctx, "gula", []*entity.PriceOption{
		{ID: "gula-grosir", ProductID: "gula", Label: "Grosir", Price: 16000},
	}))
	return f
}

func (f *fixture) view(t *testing.T, session string) *cart.View {
	t.Helper()
	v, err := f.svc.View(context.Background(), session)
	require.NoError(t, err)
	return v
}

func TestResolvePrice_OrdenDePrecedencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	opts := f.store.Repos().PriceOptions()
	kopi, _ := f.store.Repos().Products().GetByID(ctx, "kopi")
	gula, _ := f.store.Repos().Products().GetByID(ctx, "gula")

	p, err := cart.ResolvePrice(ctx, opts, kopi, "kopi-grosir", 6000)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), p, "override manual positivo gana")

	p, err = cart.ResolvePrice(ctx, opts, kopi, "kopi-grosir", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), p, "opción explícita")

	p, err = cart.ResolvePrice(ctx, opts, kopi, "", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4800), p, "opción por defecto")

	p, err = cart.ResolvePrice(ctx, opts, gula, "", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(17400), p, "sin opción por defecto = precio base")

	_, err = cart.ResolvePrice(ctx, opts, gula, "kopi-grosir", 0)
	assert.ErrorIs(t, err, domain.ErrPriceOptionNotFound, "la opción debe pertenecer al producto")
}

func TestComputeTotals_UtilidadAcotadaACeroPorLinea(t *testing.T) {
	got := cart.ComputeTotals([]entity.CartLine{
		{ProductID: "a", Price: 5000, Cost: 3000, Quantity: 2}, // +4000
		{ProductID: "b", Price: 4000, Cost: 4500, Quantity: 3}, // bajo costo: 0
	})
	assert.Equal(t, int64(22000), got.Total)
	assert.Equal(t, int64(4000), got.Profit)
	assert.Equal(t, int64(5), got.Count)
}

func TestSessionCart_AgregarAcumulaYUltimoPrecioGana(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 2}))
	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 1, PriceOptionID: "kopi-grosir"}))

	v := f.view(t, "t1")
	assert.Equal(t, cart.ModeSession, v.Mode)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, int64(3), v.Lines[0].Quantity)
	assert.Equal(t, int64(4500), v.Lines[0].Price)
	assert.Equal(t, int64(10), v.Lines[0].Stock)
	assert.Equal(t, int64(13500), v.Total)
	assert.Equal(t, int64(4500), v.Profit)

	// Otra terminal no ve el carrito privado.
	assert.Empty(t, f.view(t, "t2").Lines)
}

func TestSessionCart_SetQuantitySetPriceRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 2}))
	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "teh", Quantity: 1}))

	require.NoError(t, f.svc.SetQuantity(ctx, "t1", "kopi", 5))
	require.NoError(t, f.svc.SetPrice(ctx, "t1", "teh", 0))
	v := f.view(t, "t1")
	assert.Equal(t, int64(5*4800), v.Total)

	assert.ErrorIs(t, f.svc.SetPrice(ctx, "t1", "gula", 100), domain.ErrLineNotFound)
	assert.ErrorIs(t, f.svc.SetQuantity(ctx, "t1", "gula", 1), domain.ErrLineNotFound)
	assert.ErrorIs(t, f.svc.SetQuantity(ctx, "t1", "kopi", -1), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, f.svc.SetPrice(ctx, "t1", "kopi", -1), domain.ErrInvalidPrice)

	require.NoError(t, f.svc.SetQuantity(ctx, "t1", "kopi", 0))
	require.NoError(t, f.svc.Remove(ctx, "t1", "gula"))
	v = f.view(t, "t1")
	require.Len(t, v.Lines, 1)
	assert.Equal(t, "teh", v.Lines[0].ProductID)

	count, err := f.svc.Count(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAdd_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	assert.ErrorIs(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 0}), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "ghost", Quantity: 1}), domain.ErrProductNotFound)
	assert.ErrorIs(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "gula", Quantity: 1, PriceOptionID: "kopi-promo"}), domain.ErrPriceOptionNotFound)
	assert.Empty(t, f.view(t, "t1").Lines)
}

func TestRoom_CompartidoEntreTerminales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room, err := f.svc.NewRoom(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, room.Code, 6)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, room.Code)

	_, err = f.svc.SwitchRoom(ctx, "t2", room.Code)
	require.NoError(t, err)

	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 2}))
	require.NoError(t, f.svc.Add(ctx, "t2", cart.AddInput{ProductID: "kopi", Quantity: 1, ManualPrice: 4000}))

	for _, term := range []string{"t1", "t2"} {
		v := f.view(t, term)
		assert.Equal(t, cart.ModeRoom, v.Mode)
		assert.Equal(t, room.Code, v.RoomCode)
		require.Len(t, v.Lines, 1)
		assert.Equal(t, int64(3), v.Lines[0].Quantity)
		assert.Equal(t, int64(4000), v.Lines[0].Price)
	}

	open, closed, err := f.svc.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Empty(t, closed)
	assert.Equal(t, int64(3), open[0].ItemCount)
}

func TestRoom_PrecioCeroUsaPrecioBase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.NewRoom(ctx, "t1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "teh", Quantity: 1}))
	require.NoError(t, f.svc.SetPrice(ctx, "t1", "teh", 0))

	v := f.view(t, "t1")
	assert.Equal(t, int64(4000), v.Lines[0].Price)
}

func TestRoom_ClearLoCierraParaSiempre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room, err := f.svc.NewRoom(ctx, "t1")
	require.NoError(t, err)
	_, err = f.svc.SwitchRoom(ctx, "t2", room.Code)
	require.NoError(t, err)
	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 2}))

	require.NoError(t, f.svc.Clear(ctx, "t1"))
	// t1 quedó desacoplado: vuelve a su carrito privado.
	assert.Equal(t, cart.ModeSession, f.view(t, "t1").Mode)

	// t2 sigue apuntando al Room cerrado: la operación falla y se desacopla.
	err = f.svc.Add(ctx, "t2", cart.AddInput{ProductID: "kopi", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrRoomClosed)
	assert.Equal(t, domain.KindState, domain.KindOf(err))

	_, err = f.svc.SwitchRoom(ctx, "t2", room.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	persisted, err := f.store.Repos().Rooms().GetByCode(ctx, room.Code)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusClosed, persisted.Status)
	n, err := f.store.Repos().Rooms().SumQuantity(ctx, persisted.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, closed, err := f.svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, closed, 1)
}

func TestRoom_NuevoCodigoNuncaColisionaConAbiertos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	codes := make(map[string]bool)
	for i := 0; i < 25; i++ {
		room, err := f.svc.NewRoom(ctx, "t1")
		require.NoError(t, err)
		assert.False(t, codes[room.Code])
		codes[room.Code] = true
	}
	open, _, err := f.svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 25)
}

func TestDetachRoom_NoCierraElRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room, err := f.svc.NewRoom(ctx, "t1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 1}))

	require.NoError(t, f.svc.DetachRoom(ctx, "t1"))
	assert.Equal(t, cart.ModeSession, f.view(t, "t1").Mode)

	_, err = f.svc.SwitchRoom(ctx, "t1", room.Code)
	require.NoError(t, err)
	assert.Len(t, f.view(t, "t1").Lines, 1)
}

func TestWithinCart_FalloDeCommitRestauraLaSesion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "kopi", Quantity: 1}))

	f.store.SetCommitHook(func() error { return assert.AnError })
	err := f.svc.Add(ctx, "t1", cart.AddInput{ProductID: "teh", Quantity: 1})
	f.store.SetCommitHook(nil)

	assert.ErrorIs(t, err, domain.ErrConsistency)
	v := f.view(t, "t1")
	require.Len(t, v.Lines, 1)
	assert.Equal(t, "kopi", v.Lines[0].ProductID)
}
