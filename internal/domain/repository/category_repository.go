package repository

import (
	"context"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve (nil, nil) si no existe; nombres repetidos -> domain.ErrDuplicate.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete elimina la categoría y en cascada sus productos (y los movimientos de estos).
	Delete(ctx context.Context, id string) error
	// List busca sin distinguir mayúsculas en nombre y descripción; search vacío lista todo.
	List(ctx context.Context, search string) ([]*entity.Category, error)
}
