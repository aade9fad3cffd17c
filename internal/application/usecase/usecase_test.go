package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
	"github.com/jhoicas/stock-tracker-api/internal/testutil/memstore"
)

type fixture struct {
	store      *memstore.Store
	categories *usecase.CategoryUseCase
	suppliers  *usecase.SupplierUseCase
	products   *usecase.ProductUseCase
	movements  *usecase.MovementUseCase
}

func newFixture() fixture {
	store := memstore.New()
	writer := inventory.NewProductWriter(domaininv.NewRecorder(domaininv.RecorderDefaults{}))
	return fixture{
		store:      store,
		categories: usecase.NewCategoryUseCase(store.Categories()),
		suppliers:  usecase.NewSupplierUseCase(store.Suppliers()),
		products:   usecase.NewProductUseCase(store.TxRunner(), store.Products(), store.Categories(), store.Suppliers(), writer),
		movements:  usecase.NewMovementUseCase(store.Movements(), store.Products(), "User"),
	}
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func (f fixture) createProduct(t *testing.T, sku string, quantity int) (*dto.ProductResponse, entity.Category, entity.Supplier) {
	t.Helper()
	cat := f.store.AddCategory("Electronics " + sku)
	sup := f.store.AddSupplier("TechCorp " + sku)
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Producto " + sku, SKU: sku, Price: price("29.99"), Quantity: quantity,
		MinStockLevel: 5, CategoryID: cat.ID, SupplierID: sup.ID,
	})
	require.NoError(t, err)
	return p, cat, sup
}

// ─── Categorías / proveedores ───────────────────────────────────────────────

func TestCategory_CRUDYBusqueda(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	elec, err := f.categories.Create(ctx, dto.CategoryRequest{Name: "Electronics", Description: "Gadgets"})
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, dto.CategoryRequest{Name: "Office Supplies", Description: "Paper"})
	require.NoError(t, err)

	_, err = f.categories.Create(ctx, dto.CategoryRequest{Name: "Electronics"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := f.categories.List(ctx, "gadg")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Electronics", list.Items[0].Name)

	updated, err := f.categories.Update(ctx, elec.ID, dto.CategoryRequest{Name: "Electrónica"})
	require.NoError(t, err)
	assert.Equal(t, "Electrónica", updated.Name)

	_, err = f.categories.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_BorradoEnCascada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, cat, _ := f.createProduct(t, "LT-WR-001", 10)
	_, err := f.products.Update(ctx, p.ID, dto.UpdateProductRequest{Quantity: ptr(12)}, "")
	require.NoError(t, err)
	require.Equal(t, 1, f.store.MovementCount())

	require.NoError(t, f.categories.Delete(ctx, cat.ID))

	_, err = f.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestSupplier_NombreObligatorio(t *testing.T) {
	f := newFixture()
	_, err := f.suppliers.Create(context.Background(), dto.SupplierRequest{Name: "   "})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

// ─── Productos ──────────────────────────────────────────────────────────────

func TestProduct_CreacionNoRegistraMovimiento(t *testing.T) {
	f := newFixture()
	p, cat, sup := f.createProduct(t, "LT-WR-001", 10)

	assert.Equal(t, "29.99", p.Price)
	assert.Equal(t, cat.Name, p.CategoryName)
	assert.Equal(t, sup.Name, p.SupplierName)
	assert.True(t, p.IsActive)
	assert.False(t, p.IsLowStock)
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestProduct_CreacionConCategoriaInexistente(t *testing.T) {
	f := newFixture()
	sup := f.store.AddSupplier("TechCorp")
	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "x", SKU: "X-1", Price: price("1"), CategoryID: "nada", SupplierID: sup.ID,
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category_id", verr.Field)
}

func TestProduct_SKUDuplicado(t *testing.T) {
	f := newFixture()
	_, cat, sup := f.createProduct(t, "LT-WR-001", 10)
	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "otro", SKU: "LT-WR-001", Price: price("1"), CategoryID: cat.ID, SupplierID: sup.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProduct_ActualizacionDeCantidadRegistraMovimiento(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, _, _ := f.createProduct(t, "MSE-BT-002", 10)

	updated, err := f.products.Update(ctx, p.ID, dto.UpdateProductRequest{Quantity: ptr(3)}, "ana")
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.True(t, updated.IsLowStock)

	movs, err := f.movements.List(ctx, dto.MovementListQuery{Product: p.ID})
	require.NoError(t, err)
	require.Equal(t, 1, movs.Total)
	assert.Equal(t, "OUT", movs.Items[0].MovementType)
	assert.Equal(t, 7, movs.Items[0].Quantity)
	assert.Equal(t, "Quantity updated via admin/form", movs.Items[0].Reason)
	assert.Equal(t, "ana", movs.Items[0].PerformedBy)
}

func TestProduct_ActualizacionSinCambioDeCantidad(t *testing.T) {
	f := newFixture()
	p, _, _ := f.createProduct(t, "MSE-BT-002", 10)

	updated, err := f.products.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: ptr("Mouse Pro")}, "")
	require.NoError(t, err)
	assert.Equal(t, "Mouse Pro", updated.Name)
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestProduct_ReemplazoCantidadNegativaNoEscribe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, cat, sup := f.createProduct(t, "KB-USB-003", 10)

	_, err := f.products.Replace(ctx, p.ID, dto.CreateProductRequest{
		Name: "Keyboard", SKU: "KB-USB-003", Price: price("49.99"), Quantity: -1,
		CategoryID: cat.ID, SupplierID: sup.ID,
	}, "")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Quantity cannot be negative", verr.Message)

	again, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Quantity)
	assert.Equal(t, "29.99", again.Price)
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestProduct_ActualizarInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.products.Update(context.Background(), "nada", dto.UpdateProductRequest{Quantity: ptr(1)}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_ListadoConFiltros(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	low, cat, _ := f.createProduct(t, "LAM-DESK-005", 2)
	f.createProduct(t, "PP-A4-010", 100)
	_, err := f.products.Update(ctx, low.ID, dto.UpdateProductRequest{IsActive: ptr(false)}, "")
	require.NoError(t, err)

	all, err := f.products.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	lowOnly, err := f.products.List(ctx, repository.ProductFilter{LowStockOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, lowOnly.Total)
	assert.Equal(t, "LAM-DESK-005", lowOnly.Items[0].SKU)

	byCat, err := f.products.List(ctx, repository.ProductFilter{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, byCat.Total)

	active, err := f.products.List(ctx, repository.ProductFilter{IsActive: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, 1, active.Total)
	assert.Equal(t, "PP-A4-010", active.Items[0].SKU)

	search, err := f.products.List(ctx, repository.ProductFilter{Search: "pp-a4"})
	require.NoError(t, err)
	assert.Equal(t, 1, search.Total)
}

func TestParseProductFilter(t *testing.T) {
	f, err := usecase.ParseProductFilter(dto.ProductListQuery{IsActive: "false", LowStock: "true", Search: " lamp "})
	require.NoError(t, err)
	require.NotNil(t, f.IsActive)
	assert.False(t, *f.IsActive)
	assert.True(t, f.LowStockOnly)
	assert.Equal(t, "lamp", f.Search)

	_, err = usecase.ParseProductFilter(dto.ProductListQuery{IsActive: "quizás"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Movimientos manuales ───────────────────────────────────────────────────

func TestMovement_CreacionManualNoTocaElProducto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, _, _ := f.createProduct(t, "LT-WR-001", 10)

	m, err := f.movements.Create(ctx, dto.CreateMovementRequest{
		ProductID: p.ID, Quantity: 4, MovementType: "out", Reason: "Venta", Reference: "SO-1001",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "OUT", m.MovementType)
	assert.Equal(t, "Stock Out", m.MovementTypeLabel)
	assert.Equal(t, "User", m.PerformedBy)

	again, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Quantity)

	got, err := f.movements.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.ProductName)
}

func TestMovement_Validaciones(t *testing.T) {
	f := newFixture()
	p, _, _ := f.createProduct(t, "LT-WR-001", 10)

	cases := []struct {
		nombre  string
		req     dto.CreateMovementRequest
		mensaje string
	}{
		{"cantidad cero", dto.CreateMovementRequest{ProductID: p.ID, Quantity: 0, MovementType: "IN"}, "Quantity must be positive"},
		{"salida mayor al stock", dto.CreateMovementRequest{ProductID: p.ID, Quantity: 11, MovementType: "OUT"}, "Cannot remove more stock than available"},
		{"cantidad fuera de rango", dto.CreateMovementRequest{ProductID: p.ID, Quantity: entity.MaxQuantity + 1, MovementType: "IN"}, "Quantity cannot exceed 2147483647"},
		{"tipo inválido", dto.CreateMovementRequest{ProductID: p.ID, Quantity: 1, MovementType: "MOVE"}, "movement_type must be one of IN, OUT, ADJ"},
		{"producto inexistente", dto.CreateMovementRequest{ProductID: "nada", Quantity: 1, MovementType: "IN"}, "Product does not exist"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.movements.Create(context.Background(), tc.req, "")
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.mensaje, verr.Message)
		})
	}
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestMovement_ListadoPorTipoYBusqueda(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, _, _ := f.createProduct(t, "LT-WR-001", 10)
	f.store.AddMovement(entity.StockMovement{ProductID: p.ID, Quantity: 2, Type: entity.MovementTypeIn, Reason: "Restock", PerformedBy: "ana"})
	f.store.AddMovement(entity.StockMovement{ProductID: p.ID, Quantity: 1, Type: entity.MovementTypeOut, Reason: "Sale", PerformedBy: "luis"})

	ins, err := f.movements.List(ctx, dto.MovementListQuery{MovementType: "IN"})
	require.NoError(t, err)
	require.Equal(t, 1, ins.Total)
	assert.Equal(t, "Restock", ins.Items[0].Reason)

	byActor, err := f.movements.List(ctx, dto.MovementListQuery{Search: "LUIS"})
	require.NoError(t, err)
	assert.Equal(t, 1, byActor.Total)

	_, err = f.movements.List(ctx, dto.MovementListQuery{MovementType: "TRANSFER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
