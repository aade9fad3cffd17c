package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

var fixtureTime = time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

// AddCategory inserta una categoría directamente (sin casos de uso).
func (s *Store) AddCategory(name string) entity.Category {
	c := entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: fixtureTime, UpdatedAt: fixtureTime}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return c
}

// AddSupplier inserta un proveedor directamente.
func (s *Store) AddSupplier(name string) entity.Supplier {
	sp := entity.Supplier{ID: uuid.New().String(), Name: name, CreatedAt: fixtureTime, UpdatedAt: fixtureTime}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sp.ID] = sp
	return sp
}

// AddProduct inserta un producto activo con la cantidad indicada. No genera movimiento.
func (s *Store) AddProduct(sku string, quantity int, category entity.Category, supplier entity.Supplier) entity.Product {
	p := entity.Product{
		ID:            uuid.New().String(),
		Name:          "Producto " + sku,
		SKU:           sku,
		Price:         decimal.RequireFromString("10.00"),
		Quantity:      quantity,
		MinStockLevel: 5,
		CategoryID:    category.ID,
		SupplierID:    supplier.ID,
		IsActive:      true,
		CreatedAt:     fixtureTime,
		UpdatedAt:     fixtureTime,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	p.CategoryName = category.Name
	p.SupplierName = supplier.Name
	return p
}

// AddMovement inserta un movimiento directamente.
func (s *Store) AddMovement(m entity.StockMovement) entity.StockMovement {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = fixtureTime
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements[m.ID] = m
	return m
}
