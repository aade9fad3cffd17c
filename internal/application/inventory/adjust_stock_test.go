package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
	"github.com/jhoicas/stock-tracker-api/internal/testutil/memstore"
)

func str(s string) *string { return &s }

type adjustFixture struct {
	store   *memstore.Store
	uc      *inventory.AdjustStockUseCase
	product entity.Product
}

func newAdjustFixture(t *testing.T, quantity int) adjustFixture {
	t.Helper()
	store := memstore.New()
	cat := store.AddCategory("Electronics")
	sup := store.AddSupplier("TechCorp Inc")
	p := store.AddProduct("LT-WR-001", quantity, cat, sup)

	writer := inventory.NewProductWriter(domaininv.NewRecorder(domaininv.RecorderDefaults{}))
	uc := inventory.NewAdjustStockUseCase(store.TxRunner(), store.Products(), writer)
	return adjustFixture{store: store, uc: uc, product: p}
}

func (f adjustFixture) movements(t *testing.T) []*entity.StockMovement {
	t.Helper()
	list, err := f.store.Movements().List(context.Background(), repository.MovementFilter{ProductID: f.product.ID})
	require.NoError(t, err)
	return list
}

func (f adjustFixture) quantity(t *testing.T) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func TestAdjustStock_AddRegistraEntrada(t *testing.T) {
	f := newAdjustFixture(t, 10)

	p, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: f.product.ID, AdjustmentType: "add", Quantity: str("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, 15, p.Quantity)
	assert.Equal(t, "Electronics", p.CategoryName, "devuelve el modelo de lectura completo")

	movs := f.movements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, 5, movs[0].Quantity)
	assert.Equal(t, "Quantity updated via admin/form", movs[0].Reason)
	assert.Equal(t, "User", movs[0].PerformedBy)
	assert.Equal(t, "Stock adjustment - "+f.product.ID, movs[0].Reference)
}

func TestAdjustStock_SubtractConMotivoYActor(t *testing.T) {
	f := newAdjustFixture(t, 10)

	p, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: f.product.ID, AdjustmentType: "subtract", Quantity: str("3"),
		Reason: "Damaged", Actor: "maria",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity)

	movs := f.movements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOut, movs[0].Type)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.Equal(t, "Damaged", movs[0].Reason)
	assert.Equal(t, "maria", movs[0].PerformedBy)
}

func TestAdjustStock_SubtractHastaCero(t *testing.T) {
	f := newAdjustFixture(t, 4)

	p, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: f.product.ID, AdjustmentType: "subtract", Quantity: str("4"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.Len(t, f.movements(t), 1)
}

func TestAdjustStock_Rechazos(t *testing.T) {
	cases := []struct {
		nombre  string
		tipo    string
		qty     *string
		mensaje string
	}{
		{"sin tipo", "", str("5"), "adjustment_type and quantity are required"},
		{"sin cantidad", "add", nil, "adjustment_type and quantity are required"},
		{"cantidad vacía", "add", str("  "), "adjustment_type and quantity are required"},
		{"cantidad no numérica", "add", str("abc"), "quantity must be a valid integer"},
		{"cantidad decimal", "add", str("2.5"), "quantity must be a valid integer"},
		{"cantidad cero", "add", str("0"), "quantity must be greater than 0"},
		{"cantidad negativa", "subtract", str("-3"), "quantity must be greater than 0"},
		{"tipo desconocido", "multiply", str("2"), "adjustment_type must be 'add' or 'subtract'"},
		{"más que el stock", "subtract", str("20"), "Cannot remove more than current stock (10)"},
		{"cantidad mayor al límite", "add", str("2147483648"), "quantity cannot exceed 2147483647"},
		{"cantidad cercana a int64", "add", str("9223372036854775800"), "quantity cannot exceed 2147483647"},
		{"cantidad que desborda int64", "add", str("99999999999999999999"), "quantity cannot exceed 2147483647"},
		{"negativa que desborda int64", "add", str("-99999999999999999999"), "quantity must be greater than 0"},
		{"stock resultante fuera de rango", "add", str("2147483640"), "Cannot add more than 2147483637 units (current stock 10)"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			f := newAdjustFixture(t, 10)

			_, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
				ProductID: f.product.ID, AdjustmentType: tc.tipo, Quantity: tc.qty,
			})
			var rej *domain.RejectionError
			require.True(t, errors.As(err, &rej), "se esperaba RejectionError, llegó %v", err)
			assert.Equal(t, tc.mensaje, rej.Message)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			if tc.nombre == "más que el stock" {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}

			assert.Equal(t, 10, f.quantity(t), "un rechazo no cambia nada")
			assert.Empty(t, f.movements(t))
		})
	}
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	f := newAdjustFixture(t, 10)

	_, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: "no-existe", AdjustmentType: "add", Quantity: str("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestAdjustStock_FalloInternoHaceRollback(t *testing.T) {
	f := newAdjustFixture(t, 10)
	f.store.FailNextMovement(errors.New("disco lleno"))

	_, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: f.product.ID, AdjustmentType: "add", Quantity: str("5"),
	})
	var internal *domain.InternalError
	require.True(t, errors.As(err, &internal))
	assert.Contains(t, err.Error(), "Failed to adjust stock: ")
	assert.Contains(t, err.Error(), "disco lleno")

	assert.Equal(t, 10, f.quantity(t), "el producto no queda modificado sin su movimiento")
	assert.Empty(t, f.movements(t))
}

func TestAdjustStock_ConcurrentesNoPierdenActualizaciones(t *testing.T) {
	f := newAdjustFixture(t, 10)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
				ProductID: f.product.ID, AdjustmentType: "add", Quantity: str("1"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, f.quantity(t))
	assert.Len(t, f.movements(t), 20)
}

// Reproducir el historial desde la cantidad inicial da la cantidad actual.
func TestAdjustStock_HistorialReproduceCantidad(t *testing.T) {
	f := newAdjustFixture(t, 10)
	steps := []struct {
		tipo string
		qty  string
	}{{"add", "5"}, {"subtract", "7"}, {"add", "12"}, {"subtract", "1"}}
	for _, s := range steps {
		_, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
			ProductID: f.product.ID, AdjustmentType: s.tipo, Quantity: str(s.qty),
		})
		require.NoError(t, err)
	}

	total := 10
	for _, m := range f.movements(t) {
		if m.Type == entity.MovementTypeIn {
			total += m.Quantity
		} else {
			total -= m.Quantity
		}
	}
	assert.Equal(t, f.quantity(t), total)
	assert.Equal(t, 19, total)
}

func TestAdjustStock_AddHastaElLimite(t *testing.T) {
	f := newAdjustFixture(t, 10)

	p, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ProductID: f.product.ID, AdjustmentType: "add", Quantity: str("2147483637"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, p.Quantity)
	assert.Len(t, f.movements(t), 1)
}

func TestAdjustStock_ProductoInexistenteAntesQueElCuerpo(t *testing.T) {
	f := newAdjustFixture(t, 10)

	for _, id := range []string{"00000000-0000-0000-0000-000000000000", "no-es-uuid"} {
		_, err := f.uc.AdjustStock(context.Background(), inventory.AdjustStockInput{ProductID: id})
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
	assert.Empty(t, f.movements(t))
}
