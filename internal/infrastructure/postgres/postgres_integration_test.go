//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
	"github.com/jhoicas/stock-tracker-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-tracker-api/pkg/logger"
)

// Un contenedor por paquete; cada test limpia las tablas con truncate().
var (
	testPool *pgxpool.Pool
	testDSN  string
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("stock_tracker_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "levantar PostgreSQL: %v\n", err)
		os.Exit(1)
	}

	testDSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err == nil {
		err = postgres.Migrate(testDSN, logger.Nop())
	}
	if err == nil {
		testPool, err = postgres.NewPoolFromDSN(ctx, testDSN)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "preparar base de pruebas: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()
	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func truncate(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE stock_movements, products, categories, suppliers CASCADE`)
	require.NoError(t, err)
}

type seeded struct {
	category *entity.Category
	supplier *entity.Supplier
}

func seedRefs(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	cat := &entity.Category{ID: uuid.New().String(), Name: "Electronics", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCategoryRepository(testPool).Create(ctx, cat))
	sup := &entity.Supplier{ID: uuid.New().String(), Name: "TechCorp Inc", Email: "steve@techcorp.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewSupplierRepository(testPool).Create(ctx, sup))
	return seeded{category: cat, supplier: sup}
}

func newProduct(s seeded, sku string, quantity int) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID:            uuid.New().String(),
		Name:          "Producto " + sku,
		SKU:           sku,
		Price:         decimal.RequireFromString("29.99"),
		Quantity:      quantity,
		MinStockLevel: 5,
		CategoryID:    s.category.ID,
		SupplierID:    s.supplier.ID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func newAdjuster() *inventory.AdjustStockUseCase {
	writer := inventory.NewProductWriter(domaininv.NewRecorder(domaininv.RecorderDefaults{}))
	return inventory.NewAdjustStockUseCase(postgres.NewTxRunner(testPool), postgres.NewProductRepository(testPool), writer)
}

func qty(s string) *string { return &s }

// ─── Repositorios ───────────────────────────────────────────────────────────

func TestProductRepo_CrearLeerYPrecioExacto(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	repo := postgres.NewProductRepository(testPool)
	ctx := context.Background()

	p := newProduct(s, "LT-WR-001", 10)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "29.99", got.Price.StringFixed(2))
	assert.Equal(t, "Electronics", got.CategoryName)
	assert.Equal(t, "TechCorp Inc", got.SupplierName)

	missing, err := repo.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_SKUDuplicadoYCheck(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	repo := postgres.NewProductRepository(testPool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct(s, "DUP-1", 1)))
	err := repo.Create(ctx, newProduct(s, "DUP-1", 1))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	neg := newProduct(s, "NEG-1", -1)
	err = repo.Create(ctx, neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepo_FiltrosYBusqueda(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	repo := postgres.NewProductRepository(testPool)
	ctx := context.Background()

	low := newProduct(s, "KB-USB-003", 2)
	low.Description = "Mechanical keyboard 100%"
	require.NoError(t, repo.Create(ctx, low))
	inactive := newProduct(s, "MSE-BT-002", 40)
	inactive.IsActive = false
	require.NoError(t, repo.Create(ctx, inactive))

	list, err := repo.List(ctx, repository.ProductFilter{LowStockOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "KB-USB-003", list[0].SKU)

	active := false
	list, err = repo.List(ctx, repository.ProductFilter{IsActive: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "MSE-BT-002", list[0].SKU)

	// % se busca literal, no como comodín.
	list, err = repo.List(ctx, repository.ProductFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = repo.List(ctx, repository.ProductFilter{Search: "mse-bt"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCategoryRepo_BorrarEnCascada(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	ctx := context.Background()
	p := newProduct(s, "LAM-DESK-005", 3)
	require.NoError(t, postgres.NewProductRepository(testPool).Create(ctx, p))

	_, err := newAdjuster().AdjustStock(ctx, inventory.AdjustStockInput{ProductID: p.ID, AdjustmentType: "add", Quantity: qty("1")})
	require.NoError(t, err)

	require.NoError(t, postgres.NewCategoryRepository(testPool).Delete(ctx, s.category.ID))

	got, err := postgres.NewProductRepository(testPool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	movs, err := postgres.NewStockMovementRepository(testPool).List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)

	assert.ErrorIs(t, postgres.NewCategoryRepository(testPool).Delete(ctx, s.category.ID), domain.ErrNotFound)
}

func TestProductRepo_BorrarEliminaSusMovimientos(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(testPool)
	movements := postgres.NewStockMovementRepository(testPool)
	p := newProduct(s, "MSE-BT-002", 10)
	require.NoError(t, products.Create(ctx, p))

	_, err := newAdjuster().AdjustStock(ctx, inventory.AdjustStockInput{ProductID: p.ID, AdjustmentType: "subtract", Quantity: qty("2")})
	require.NoError(t, err)
	movs, err := movements.List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)

	require.NoError(t, products.Delete(ctx, p.ID))

	got, err := movements.GetByID(ctx, movs[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, products.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestAdjustStock_StockResultanteFueraDeRango(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	ctx := context.Background()
	p := newProduct(s, "PP-A4-011", 10)
	require.NoError(t, postgres.NewProductRepository(testPool).Create(ctx, p))

	_, err := newAdjuster().AdjustStock(ctx, inventory.AdjustStockInput{
		ProductID: p.ID, AdjustmentType: "add", Quantity: qty("2147483640"),
	})
	var rej *domain.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Cannot add more than 2147483637 units (current stock 10)", rej.Message)

	got, err := postgres.NewProductRepository(testPool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

// ─── Ajustes sobre PostgreSQL ───────────────────────────────────────────────

func TestAdjustStock_RegistraMovimientoEnLaMismaTx(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	ctx := context.Background()
	p := newProduct(s, "PP-A4-010", 10)
	require.NoError(t, postgres.NewProductRepository(testPool).Create(ctx, p))

	got, err := newAdjuster().AdjustStock(ctx, inventory.AdjustStockInput{
		ProductID: p.ID, AdjustmentType: "subtract", Quantity: qty("4"), Reason: "Damaged", Actor: "maria",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)

	movs, err := postgres.NewStockMovementRepository(testPool).List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOut, movs[0].Type)
	assert.Equal(t, 4, movs[0].Quantity)
	assert.Equal(t, "maria", movs[0].PerformedBy)
	assert.Equal(t, "Damaged", movs[0].Reason)
	assert.Equal(t, "Producto PP-A4-010", movs[0].ProductName)

	_, err = newAdjuster().AdjustStock(ctx, inventory.AdjustStockInput{
		ProductID: p.ID, AdjustmentType: "subtract", Quantity: qty("7"),
	})
	var rej *domain.RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Cannot remove more than current stock (6)", rej.Message)
}

func TestAdjustStock_ConcurrenteSinPerderActualizaciones(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	ctx := context.Background()
	p := newProduct(s, "LT-WR-001", 10)
	require.NoError(t, postgres.NewProductRepository(testPool).Create(ctx, p))

	uc := newAdjuster()
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AdjustStock(ctx, inventory.AdjustStockInput{ProductID: p.ID, AdjustmentType: "add", Quantity: qty("1")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := postgres.NewProductRepository(testPool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Quantity)

	movs, err := postgres.NewStockMovementRepository(testPool).List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Len(t, movs, 20)
}

// ─── Analítica ──────────────────────────────────────────────────────────────

func TestAnalyticsRepo_TotalesYMovimientosPorDia(t *testing.T) {
	truncate(t)
	s := seedRefs(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(testPool)

	low := newProduct(s, "LAM-DESK-005", 2)
	require.NoError(t, products.Create(ctx, low))
	require.NoError(t, products.Create(ctx, newProduct(s, "LT-WR-001", 10)))
	inactive := newProduct(s, "OLD-1", 100)
	inactive.IsActive = false
	require.NoError(t, products.Create(ctx, inactive))

	_, err := newAdjuster().AdjustStock(ctx, inventory.AdjustStockInput{ProductID: low.ID, AdjustmentType: "add", Quantity: qty("1")})
	require.NoError(t, err)

	repo := postgres.NewAnalyticsRepository(testPool)
	totals, err := repo.GetStockTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.ActiveProducts)
	assert.Equal(t, 1, totals.LowStock)
	assert.Equal(t, "389.87", totals.InventoryValue.StringFixed(2)) // 29.99 × (3 + 10)
	assert.Equal(t, 1, totals.Categories)
	assert.Equal(t, 1, totals.Suppliers)

	byCat, err := repo.GetStockByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, 13, byCat[0].Units)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	days, err := repo.GetMovementsByDay(ctx, today.AddDate(0, 0, -6), today.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].In)
	assert.True(t, days[0].Day.Equal(today))
}

// ─── Migraciones ────────────────────────────────────────────────────────────

func TestMigrator_UpEsIdempotente(t *testing.T) {
	mg, err := postgres.NewMigrator(testDSN, logger.Nop())
	require.NoError(t, err)
	defer func() { _ = mg.Close() }()

	assert.NoError(t, mg.Up())
}

func TestMigrator_DownYUpRecreaElEsquema(t *testing.T) {
	mg, err := postgres.NewMigrator(testDSN, logger.Nop())
	require.NoError(t, err)
	defer func() { _ = mg.Close() }()

	require.NoError(t, mg.Down())
	require.NoError(t, mg.Up())

	var n int
	err = testPool.QueryRow(context.Background(), `SELECT count(*) FROM products`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
