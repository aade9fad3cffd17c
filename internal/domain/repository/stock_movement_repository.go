package repository

import (
	"context"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ProductID string
	Type      *entity.MovementType
	Search    string // motivo, referencia o actor
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// Los movimientos no se actualizan ni se borran individualmente.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List ordena del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
