package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/stock-tracker-api/docs"
	appanalytics "github.com/jhoicas/stock-tracker-api/internal/application/analytics"
	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	domaininv "github.com/jhoicas/stock-tracker-api/internal/domain/inventory"
	infrapdf "github.com/jhoicas/stock-tracker-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-tracker-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-tracker-api/internal/interfaces/http"
	"github.com/jhoicas/stock-tracker-api/pkg/config"
	"github.com/jhoicas/stock-tracker-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Recorder: motivo, actor y referencia por defecto de los movimientos automáticos.
	recorder := domaininv.NewRecorder(domaininv.RecorderDefaults{
		Reason:          cfg.Stock.DefaultReason,
		Actor:           cfg.Stock.DefaultActor,
		ReferenceFormat: cfg.Stock.ReferenceFormat,
	})
	writer := inventory.NewProductWriter(recorder)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, categoryRepo, supplierRepo, writer)
	movementUC := usecase.NewMovementUseCase(movementRepo, productRepo, recorder.Defaults().Actor)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo, writer)
	dashboardUC := appanalytics.NewDashboardUseCase(postgres.NewAnalyticsRepository(pool), productRepo)

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Tracker API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  categoryUC,
		SupplierUC:  supplierUC,
		ProductUC:   productUC,
		MovementUC:  movementUC,
		AdjustStock: adjustStockUC,
		DashboardUC: dashboardUC,
		StockReport: infrapdf.NewStockReportGenerator("Stock Report"),
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
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
