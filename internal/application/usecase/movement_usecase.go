package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

// MovementUseCase consulta del historial y registro manual de movimientos.
// Un movimiento manual es solo auditoría: no modifica la cantidad del producto.
type MovementUseCase struct {
	movements    repository.StockMovementRepository
	products     repository.ProductRepository
	defaultActor string
	now          func() time.Time
}

// NewMovementUseCase construye el caso de uso. defaultActor se usa cuando la petición no trae actor.
func NewMovementUseCase(movements repository.StockMovementRepository, products repository.ProductRepository, defaultActor string) *MovementUseCase {
	return &MovementUseCase{
		movements:    movements,
		products:     products,
		defaultActor: defaultActor,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// List lista movimientos filtrando por producto, tipo y texto.
func (uc *MovementUseCase) List(ctx context.Context, q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	filter := repository.MovementFilter{
		ProductID: strings.TrimSpace(q.Product),
		Search:    strings.TrimSpace(q.Search),
	}
	if v := strings.TrimSpace(q.MovementType); v != "" {
		mt, err := entity.ParseMovementType(v)
		if err != nil {
			return nil, domain.NewValidationError("movement_type", "movement_type must be one of IN, OUT, ADJ")
		}
		filter.Type = &mt
	}
	list, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un movimiento por ID.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(m), nil
}

// Create registra un movimiento manual. Reglas: cantidad positiva, tipo conocido, producto
// existente y una salida no puede superar el stock actual.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest, actor string) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "Quantity must be positive")
	}
	if in.Quantity > entity.MaxQuantity {
		return nil, domain.NewValidationError("quantity", fmt.Sprintf("Quantity cannot exceed %d", entity.MaxQuantity))
	}
	mt, err := entity.ParseMovementType(in.MovementType)
	if err != nil {
		return nil, domain.NewValidationError("movement_type", "movement_type must be one of IN, OUT, ADJ")
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewValidationError("product_id", "Product does not exist")
	}
	if mt == entity.MovementTypeOut && in.Quantity > product.Quantity {
		return nil, domain.NewValidationError("quantity", "Cannot remove more stock than available")
	}

	if strings.TrimSpace(actor) == "" {
		actor = uc.defaultActor
	}
	m := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Quantity:    in.Quantity,
		Type:        mt,
		Reason:      strings.TrimSpace(in.Reason),
		Reference:   strings.TrimSpace(in.Reference),
		PerformedBy: actor,
		Timestamp:   uc.now(),
		ProductName: product.Name,
	}
	if err := uc.movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		Quantity:          m.Quantity,
		MovementType:      string(m.Type),
		MovementTypeLabel: m.Type.Label(),
		Reason:            m.Reason,
		Reference:         m.Reference,
		PerformedBy:       m.PerformedBy,
		Timestamp:         m.Timestamp,
	}
}
