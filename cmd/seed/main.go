// seed carga el catálogo de demostración en la base configurada.
//
// Uso: go run ./cmd/seed
// Aplica las migraciones si DB_AUTO_MIGRATE está activo. Se puede ejecutar varias veces.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/application/seed"
	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	domaininv "github.com/jhoicas/stock-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-tracker-api/pkg/config"
	"github.com/jhoicas/stock-tracker-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	writer := inventory.NewProductWriter(domaininv.NewRecorder(domaininv.RecorderDefaults{
		Reason:          cfg.Stock.DefaultReason,
		Actor:           cfg.Stock.DefaultActor,
		ReferenceFormat: cfg.Stock.ReferenceFormat,
	}))

	seeder := seed.NewSeeder(
		usecase.NewCategoryUseCase(categoryRepo),
		usecase.NewSupplierUseCase(supplierRepo),
		usecase.NewProductUseCase(postgres.NewTxRunner(pool), productRepo, categoryRepo, supplierRepo, writer),
	)
	sum, err := seeder.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos de ejemplo")
	}
	log.Info().
		Int("categories", sum.Categories).
		Int("suppliers", sum.Suppliers).
		Int("products", sum.Products).
		Msg("datos de ejemplo cargados")
}
