package main

import (
	"context"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/bodega-ledger/docs"
	"github.com/jhoicas/bodega-ledger/internal/application/auth"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/application/report"
	"github.com/jhoicas/bodega-ledger/internal/application/usecase"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/bodega-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/ws"
	httpRouter "github.com/jhoicas/bodega-ledger/internal/interfaces/http"
	"github.com/jhoicas/bodega-ledger/pkg/config"
	"github.com/jhoicas/bodega-ledger/pkg/logger"
)

// @title                       Bodega Ledger API
// @version                     1.0
// @description                 Libro de inventario de bodega: ingresos, ventas FIFO, devoluciones, anulaciones y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	loc, _ := cfg.Bodega.Location()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		txRunner     inventory.TxRunner
		reads        repository.TxRepos
		settingsRepo repository.SettingsRepository
	)
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		txRunner = postgres.NewTxRunner(pool)
		reads = postgres.Repos(pool)
		settingsRepo = postgres.NewSettingsRepository(pool)
	default:
		store := memory.NewStore()
		txRunner = store
		reads = store.Repos()
		settingsRepo = store.Settings()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	}

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	ledgerOpts := []inventory.Option{
		inventory.WithLogger(log),
		inventory.WithObserver(hub),
	}
	var metricsHandler nethttp.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		ledgerOpts = append(ledgerOpts, inventory.WithObserver(metrics.NewLedgerMetrics(reg)))
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		log.Info().Msg("métricas Prometheus en /metrics")
	}

	settingsUC := usecase.NewSettingsUseCase(settingsRepo, cfg.Bodega.Name, cfg.Bodega.Currency)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, ledgerOpts...)
	batchSvc := inventory.NewBatchService(reads.Batches)
	replenishmentUC := inventory.NewReplenishmentUseCase(reads)
	productUC := usecase.NewProductUseCase(txRunner, reads)
	reportUC := report.NewReportUseCase(reads, settingsUC, cfg.Bodega.ExpiryWarningDays)
	sessionUC := auth.NewSessionUseCase(settingsUC, auth.JWTConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledgerUC,
		Batches:       batchSvc,
		Replenishment: replenishmentUC,
		ProductUC:     productUC,
		SettingsUC:    settingsUC,
		SessionUC:     sessionUC,
		Reports:       reportUC,
		PDF:           infrapdf.NewReportGenerator(),
		Location:      loc,
		Hub:           hub,
		Metrics:       metricsHandler,
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
	stop()

	log.Info().Msg("aplicación detenida")
}
