package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/application/checkout"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/report"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/pos-backoffice/internal/interfaces/http"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	rec := metrics.New()
	log := logger.Nop()
	clock := func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	carts := cart.NewService(cart.Config{
		TxRunner: store,
		Repos:    store.Repos(),
		Sessions: memory.NewSessionStore(time.Hour),
		Clock:    clock,
		Metrics:  rec,
		Logger:   log,
	})
	return apphttp.NewApp(apphttp.RouterDeps{
		AppName:     "pos-test",
		Carts:       carts,
		Checkout:    checkout.NewCheckoutUseCase(carts, clock, rec, log),
		AdjustStock: inventory.NewAdjustStockUseCase(store, clock, rec, log),
		Production:  inventory.NewProductionUseCase(store, clock, rec, log),
		Reconcile:   inventory.NewReconcileUseCase(store.Repos()),
		Reports:     report.NewReportUseCase(store.Repos()),
		ProductUC:   usecase.NewProductUseCase(store, store.Repos(), clock, log),
		CustomerUC:  usecase.NewCustomerUseCase(store.Repos().Customers(), clock),
		Metrics:     rec,
		Logger:      log,
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
		JWTExpMin:   testExpMin,
	})
}

// call envía body como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func newSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	var s dto.SessionResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/sessions", "", nil, &s))
	require.NotEmpty(t, s.Token)
	return s.Token
}

func createProduct(t *testing.T, app *fiber.App, in dto.CreateProductRequest) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/products", "", in, &p))
	return p
}

func TestRouter_Health(t *testing.T) {
	app := buildApp(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", "", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_CarritoRequiereSesion(t *testing.T) {
	app := buildApp(t)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/cart", "", nil, &e))
	assert.Equal(t, "MISSING_TOKEN", e.Code)
}

func TestRouter_VentaCompleta(t *testing.T) {
	app := buildApp(t)
	kopi := createProduct(t, app, dto.CreateProductRequest{Name: "Kopi", Price: 5000, Cost: 3000, Stock: 10})
	token := newSession(t, app)

	var view dto.CartViewResponse
	status := call(t, app, http.MethodPost, "/api/cart/items", token, dto.AddCartItemRequest{ProductID: kopi.ID, Quantity: 2}, &view)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "session", view.Mode)
	assert.Equal(t, int64(10000), view.Total)
	assert.Equal(t, int64(4000), view.Profit)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(10), view.Lines[0].Stock)

	var count dto.CartCountResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/cart/count", token, nil, &count))
	assert.Equal(t, int64(2), count.Count)

	var e dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/checkout", token, dto.CheckoutRequest{Mode: "LUNAS", AmountPaid: 5000}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_PAYMENT", e.Code)

	var sale dto.SaleResponse
	status = call(t, app, http.MethodPost, "/api/checkout", token, dto.CheckoutRequest{Mode: "LUNAS", AmountPaid: 20000}, &sale)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(10000), sale.Total)
	assert.Equal(t, int64(10000), sale.Change)
	assert.Equal(t, "LUNAS", sale.Status)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/cart", token, nil, &view))
	assert.Empty(t, view.Lines)

	var rec dto.ReconcileResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/reconcile/"+kopi.ID, "", nil, &rec))
	assert.True(t, rec.Consistent)
	assert.Equal(t, int64(8), rec.Stock)

	var summary dto.SalesSummaryResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sales/summary?from=2024-05-01", "", nil, &summary))
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, int64(10000), summary.Revenue)

	var detail dto.SaleResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sales/"+sale.ID, "", nil, &detail))
	require.NotNil(t, detail.Profit)
	assert.Equal(t, int64(4000), *detail.Profit)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `pos_checkout_sales_total{status="LUNAS"} 1`)
}

func TestRouter_RoomCompartido(t *testing.T) {
	app := buildApp(t)
	teh := createProduct(t, app, dto.CreateProductRequest{Name: "Teh", Price: 4000, Cost: 2500})
	t1, t2 := newSession(t, app), newSession(t, app)

	var room dto.RoomResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/rooms", t1, nil, &room))
	assert.Len(t, room.Code, 6)

	var view dto.CartViewResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/rooms/"+room.Code+"/switch", t2, nil, &view))
	assert.Equal(t, "room", view.Mode)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/cart/items", t1, dto.AddCartItemRequest{ProductID: teh.ID, Quantity: 1}, &view))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/cart/items", t2, dto.AddCartItemRequest{ProductID: teh.ID, Quantity: 2}, &view))
	assert.Equal(t, int64(3), view.Count)

	var sale dto.SaleResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/checkout", t2, dto.CheckoutRequest{Mode: "LUNAS", AmountPaid: 12000}, &sale))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodGet, "/api/cart", t1, nil, &e))
	assert.Equal(t, "ROOM_CLOSED", e.Code)
	// Tras el aviso la sesión vuelve a su carrito privado.
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/cart", t1, nil, &view))
	assert.Equal(t, "session", view.Mode)

	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/rooms/"+room.Code+"/switch", t1, nil, &e))

	var list dto.RoomListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/rooms", t1, nil, &list))
	assert.Empty(t, list.Open)
	require.Len(t, list.Closed, 1)
	assert.Equal(t, room.Code, list.Closed[0].Code)
}

func TestRouter_ErroresDeEntrada(t *testing.T) {
	app := buildApp(t)
	token := newSession(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/cart/items", token, dto.AddCartItemRequest{}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/cart/items", token, dto.AddCartItemRequest{ProductID: "nope", Quantity: 1}, &e))
	assert.Equal(t, "PRODUCT_NOT_FOUND", e.Code)

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/inventory/movements", "", dto.AdjustStockRequest{ProductID: "x", Direction: "SIDEWAYS", Quantity: 1}, &e))
	assert.Equal(t, "INVALID_DIRECTION", e.Code)

	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/checkout", token, dto.CheckoutRequest{Mode: "LUNAS"}, &e))
	assert.Equal(t, "EMPTY_CART", e.Code)
}

func TestRouter_Produccion(t *testing.T) {
	app := buildApp(t)
	tepung := createProduct(t, app, dto.CreateProductRequest{Name: "Tepung", Cost: 100, Stock: 100})
	kue := createProduct(t, app, dto.CreateProductRequest{Name: "Kue", Price: 2000})

	var p dto.ProductResponse
	raw := map[string]interface{}{"lines": []map[string]interface{}{{"ingredient_id": tepung.ID, "qty_per_unit": "2.5"}}}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/products/"+kue.ID+"/recipe", "", raw, &p))
	assert.True(t, p.Manufactured)

	var out dto.ProductionResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/inventory/production", "", dto.ProductionRequest{ProductID: kue.ID, Quantity: 3}, &out))
	require.Len(t, out.Consumed, 1)
	assert.Equal(t, int64(8), out.Consumed[0].Quantity)

	var list dto.MutationListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/movements?product_id="+tepung.ID+"&direction=OUT", "", nil, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(92), list.Items[0].StockAfter)
}

func replaceRecipe(t *testing.T, app *fiber.App, productID, ingredientID, qty string) {
	t.Helper()
	var p dto.ProductResponse
	raw := map[string]interface{}{"lines": []map[string]interface{}{{"ingredient_id": ingredientID, "qty_per_unit": qty}}}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/products/"+productID+"/recipe", "", raw, &p))
	require.True(t, p.Manufactured)
}

func TestRouter_EntradaDeFabricadoDespachaProduccion(t *testing.T) {
	app := buildApp(t)
	tepung := createProduct(t, app, dto.CreateProductRequest{Name: "Tepung", Cost: 100, Stock: 100})
	kue := createProduct(t, app, dto.CreateProductRequest{Name: "Kue", Price: 2000})
	replaceRecipe(t, app, kue.ID, tepung.ID, "2.5")

	// Otras peticiones entre medio reutilizan los buffers del servidor.
	call(t, app, http.MethodGet, "/health", "", nil, nil)
	var got dto.ProductResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+kue.ID, "", nil, &got))
	require.Len(t, got.Recipe, 1)

	var out dto.AdjustStockResponse
	status := call(t, app, http.MethodPost, "/api/inventory/movements", "", dto.AdjustStockRequest{ProductID: kue.ID, Direction: "IN", Quantity: 2}, &out)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, out.Production)
	assert.Equal(t, "IN", out.Mutation.Direction)
	assert.Equal(t, int64(2), out.Mutation.StockAfter)
	require.Len(t, out.Production.Consumed, 1)
	assert.Equal(t, tepung.ID, out.Production.Consumed[0].ProductID)
	assert.Equal(t, int64(5), out.Production.Consumed[0].Quantity)
	assert.Equal(t, int64(500), out.Production.TotalIngredientCost)
	assert.Equal(t, int64(250), out.Production.NewCost)

	var rec dto.ReconcileResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/reconcile/"+tepung.ID, "", nil, &rec))
	assert.True(t, rec.Consistent)
	assert.Equal(t, int64(95), rec.Stock)
}

func TestRouter_OpcionesDePrecio(t *testing.T) {
	app := buildApp(t)
	kopi := createProduct(t, app, dto.CreateProductRequest{Name: "Kopi", Price: 5000, Cost: 3000, Stock: 10})

	var p dto.ProductResponse
	prices := dto.ReplacePricesRequest{Options: []dto.PriceOptionInput{
		{Label: "Grosir", Price: 4000, IsDefault: true},
		{Label: "Jumbo", Price: 7000},
	}}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/products/"+kopi.ID+"/prices", "", prices, &p))
	require.Len(t, p.PriceOptions, 2)
	var jumboID string
	for _, o := range p.PriceOptions {
		if o.Label == "Jumbo" {
			jumboID = o.ID
		}
	}
	require.NotEmpty(t, jumboID)

	call(t, app, http.MethodGet, "/health", "", nil, nil)
	token := newSession(t, app)

	var view dto.CartViewResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/cart/items", token, dto.AddCartItemRequest{ProductID: kopi.ID, Quantity: 1}, &view))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(4000), view.Lines[0].Price, "la opción por defecto gana al precio base")
	assert.Equal(t, int64(4000), view.Total)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/cart/items", token, dto.AddCartItemRequest{ProductID: kopi.ID, Quantity: 1, PriceOptionID: jumboID}, &view))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(7000), view.Lines[0].Price)
	assert.Equal(t, int64(14000), view.Total)

	var e dto.ErrorResponse
	other := createProduct(t, app, dto.CreateProductRequest{Name: "Teh", Price: 3000})
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/cart/items", token, dto.AddCartItemRequest{ProductID: other.ID, Quantity: 1, PriceOptionID: jumboID}, &e))
	assert.Equal(t, "PRICE_OPTION_NOT_FOUND", e.Code)
}
