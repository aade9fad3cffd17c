package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

// AdjustStockInput petición de ajuste tal como llega del cliente.
// Quantity queda como texto: nil o vacío significa ausente; se valida aquí.
type AdjustStockInput struct {
	ProductID      string
	AdjustmentType string
	Quantity       *string
	Reason         string
	Actor          string
}

// AdjustStockUseCase suma o resta unidades al stock de un producto dejando exactamente
// un movimiento (add -> IN, subtract -> OUT) en la misma transacción.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository // lecturas fuera de la tx
	writer      *ProductWriter
	now         func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository, writer *ProductWriter) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		writer:      writer,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// parsedAdjustment petición ya validada.
type parsedAdjustment struct {
	kind     entity.AdjustmentType
	quantity int
}

// AdjustStock resuelve el producto, valida la petición, bloquea la fila (SELECT FOR UPDATE),
// aplica el ajuste y devuelve el producto tal como quedó guardado.
// Un producto inexistente da ErrNotFound aunque el cuerpo sea inválido.
// Errores: *domain.RejectionError (400), domain.ErrNotFound (404), *domain.InternalError (500).
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustStockInput) (*entity.Product, error) {
	existing, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, classifyAdjustError(err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	req, err := parseAdjustment(in)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		current := product.Quantity
		if req.kind == entity.AdjustmentSubtract && req.quantity > current {
			return domain.RejectBecause(domain.ErrInsufficientStock, "Cannot remove more than current stock (%d)", current)
		}
		if req.kind == entity.AdjustmentAdd && current > entity.MaxQuantity-req.quantity {
			return domain.Reject("Cannot add more than %d units (current stock %d)", entity.MaxQuantity-current, current)
		}

		product.Quantity = req.kind.Apply(current, req.quantity)
		product.UpdatedAt = uc.now()
		_, err = uc.writer.Commit(ctx, productRepo, movRepo, &current, product, WriteOptions{
			Reason: in.Reason,
			Actor:  in.Actor,
		})
		return err
	})
	if err != nil {
		return nil, classifyAdjustError(err)
	}

	updated, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, classifyAdjustError(err)
	}
	if updated == nil {
		return nil, classifyAdjustError(errors.New("producto no encontrado tras el ajuste"))
	}
	return updated, nil
}

func parseAdjustment(in AdjustStockInput) (parsedAdjustment, error) {
	kind := strings.TrimSpace(in.AdjustmentType)
	if kind == "" || in.Quantity == nil || strings.TrimSpace(*in.Quantity) == "" {
		return parsedAdjustment{}, domain.Reject("adjustment_type and quantity are required")
	}

	// Fuera de rango Atoi devuelve el valor saturado junto con ErrRange.
	qty, err := strconv.Atoi(strings.TrimSpace(*in.Quantity))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return parsedAdjustment{}, domain.Reject("quantity must be a valid integer")
	}
	if qty <= 0 {
		return parsedAdjustment{}, domain.Reject("quantity must be greater than 0")
	}
	if qty > entity.MaxQuantity {
		return parsedAdjustment{}, domain.Reject("quantity cannot exceed %d", entity.MaxQuantity)
	}

	adjType, err := entity.ParseAdjustmentType(kind)
	if err != nil {
		return parsedAdjustment{}, domain.Reject("adjustment_type must be 'add' or 'subtract'")
	}
	return parsedAdjustment{kind: adjType, quantity: qty}, nil
}

// classifyAdjustError deja pasar los errores de dominio y envuelve el resto como fallo interno.
func classifyAdjustError(err error) error {
	var (
		rejection  *domain.RejectionError
		validation *domain.ValidationError
	)
	switch {
	case errors.As(err, &rejection), errors.As(err, &validation), errors.Is(err, domain.ErrNotFound):
		return err
	}
	return &domain.InternalError{Op: "Failed to adjust stock", Err: err}
}
