package repository

import (
	"context"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	// List busca en nombre, persona de contacto y email.
	List(ctx context.Context, search string) ([]*entity.Supplier, error)
}
