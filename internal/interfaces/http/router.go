package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/application/checkout"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/report"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/metrics"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Carts       *cart.Service
	Checkout    *checkout.CheckoutUseCase
	AdjustStock *inventory.AdjustStockUseCase
	Production  *inventory.ProductionUseCase
	Reconcile   *inventory.ReconcileUseCase
	Reports     *report.ReportUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	Metrics     *metrics.Recorder // nil = sin /metrics
	Logger      *logger.Logger
	JWTSecret   string
	JWTIssuer   string
	JWTExpMin   int
	SwaggerFile string // vacío o inexistente = sin /docs
}

// NewApp construye la aplicación Fiber con middlewares, /health, /metrics, /docs y las rutas de la API.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		// Params y query se guardan como claves en el store; no deben apuntar al buffer de fasthttp.
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "POS Back Office API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesiones de terminal (público)
	sessionHandler := NewSessionHandler(deps.JWTSecret, deps.JWTIssuer, deps.JWTExpMin)
	api.Post("/sessions", sessionHandler.Create)

	// Carrito, Rooms y checkout (requieren token de sesión)
	session := SessionMiddleware(deps.JWTSecret)

	cartGroup := api.Group("/cart", session)
	cartHandler := NewCartHandler(deps.Carts)
	cartGroup.Get("/", cartHandler.View)
	cartGroup.Get("/count", cartHandler.Count)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:productId", cartHandler.UpdateItem)
	cartGroup.Put("/items/:productId/price", cartHandler.SetPrice)
	cartGroup.Delete("/items/:productId", cartHandler.RemoveItem)

	rooms := api.Group("/rooms", session)
	roomHandler := NewRoomHandler(deps.Carts)
	rooms.Post("/", roomHandler.Create)
	rooms.Get("/", roomHandler.List)
	rooms.Post("/detach", roomHandler.Detach)
	rooms.Post("/:code/switch", roomHandler.Switch)

	checkoutHandler := NewCheckoutHandler(deps.Checkout)
	api.Post("/checkout", session, checkoutHandler.Checkout)

	// Inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.Production, deps.Reconcile, deps.Reports)
	invGroup.Post("/movements", inventoryHandler.AdjustStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/production", inventoryHandler.Produce)
	invGroup.Get("/reconcile/:productId", inventoryHandler.Reconcile)

	// Ventas (reportes)
	sales := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.Reports)
	sales.Get("/", salesHandler.List)
	sales.Get("/summary", salesHandler.Summary)
	sales.Get("/:id", salesHandler.GetByID)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/prices", productHandler.ReplacePrices)
	products.Put("/:id/recipe", productHandler.ReplaceRecipe)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
}
