package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

// WriteOptions contexto opcional de una escritura de producto.
type WriteOptions struct {
	Reason       string // motivo del movimiento; vacío -> motivo por defecto
	Actor        string // performed_by; vacío -> actor por defecto
	SkipMovement bool   // no registrar movimiento aunque cambie la cantidad
}

// ProductWriter paso único de commit de toda mutación de producto:
// Guard -> insert/update -> Recorder -> insert del movimiento.
// Debe llamarse con repositorios atados a la transacción del llamador.
type ProductWriter struct {
	recorder *inventory.Recorder
}

// NewProductWriter construye el writer con el recorder configurado.
func NewProductWriter(recorder *inventory.Recorder) *ProductWriter {
	return &ProductWriter{recorder: recorder}
}

// Commit valida y persiste product. oldQuantity nil significa producto nuevo (insert, sin movimiento).
// Devuelve el movimiento registrado o nil si no hubo cambio de cantidad.
func (w *ProductWriter) Commit(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	oldQuantity *int,
	product *entity.Product,
	opts WriteOptions,
) (*entity.StockMovement, error) {
	if err := inventory.ValidateProduct(product); err != nil {
		return nil, err
	}

	if oldQuantity == nil {
		if err := productRepo.Create(ctx, product); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if opts.SkipMovement {
		return nil, nil
	}
	mov := w.recorder.RecordIfChanged(oldQuantity, product.Quantity, product, opts.Reason, opts.Actor)
	if mov == nil {
		return nil, nil
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return mov, nil
}
