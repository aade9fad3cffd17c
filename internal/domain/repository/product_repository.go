package repository

import (
	"context"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// ProductFilter filtros de listado. Los campos vacíos/nil no filtran.
type ProductFilter struct {
	CategoryID   string
	SupplierID   string
	IsActive     *bool
	Search       string // nombre, SKU o descripción
	LowStockOnly bool   // quantity <= min_stock_level
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas incluyen CategoryName y SupplierName.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
