package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/application/checkout"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/application/report"
	"github.com/jhoicas/pos-backoffice/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/metrics"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/pos-backoffice/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/pos-backoffice/internal/interfaces/http"
	"github.com/jhoicas/pos-backoffice/pkg/config"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner ports.TxRunner
		repos    repository.Repos
	)
	switch cfg.App.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepos(pool)
	default:
		store := memory.New()
		txRunner = store
		repos = store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	}

	sessionTTL := time.Duration(cfg.Cart.SessionTTLMinutes) * time.Minute
	var sessions cart.SessionStore
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		sessions = infraredis.NewSessionStore(rdb, sessionTTL)
	} else {
		sessions = memory.NewSessionStore(sessionTTL)
	}

	rec := metrics.New()
	clock := ports.Clock(time.Now)

	carts := cart.NewService(cart.Config{
		TxRunner:       txRunner,
		Repos:          repos,
		Sessions:       sessions,
		Clock:          clock,
		Metrics:        rec,
		Logger:         log,
		RoomCodeLength: cfg.Cart.RoomCodeLength,
	})

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Carts:       carts,
		Checkout:    checkout.NewCheckoutUseCase(carts, clock, rec, log),
		AdjustStock: inventory.NewAdjustStockUseCase(txRunner, clock, rec, log),
		Production:  inventory.NewProductionUseCase(txRunner, clock, rec, log),
		Reconcile:   inventory.NewReconcileUseCase(repos),
		Reports:     report.NewReportUseCase(repos),
		ProductUC:   usecase.NewProductUseCase(txRunner, repos, clock, log),
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers(), clock),
		Metrics:     rec,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		JWTExpMin:   cfg.JWT.Expiration,
		SwaggerFile: cfg.Swagger.File,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
