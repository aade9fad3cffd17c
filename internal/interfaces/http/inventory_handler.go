package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
)

// InventoryHandler maneja los ajustes de stock y el historial de movimientos.
type InventoryHandler struct {
	adjust    *inventory.AdjustStockUseCase
	movements *usecase.MovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, movements *usecase.MovementUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, movements: movements}
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto
// @Description  Suma (add) o resta (subtract) unidades y registra el movimiento IN/OUT en la misma transacción.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "adjustment_type (add|subtract), quantity, reason opcional"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust_stock [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, domain.Reject("Invalid request body"))
		}
	}
	product, err := h.adjust.AdjustStock(c.UserContext(), inventory.AdjustStockInput{
		ProductID:      c.Params("id"),
		AdjustmentType: in.AdjustmentType,
		Quantity:       in.QuantityText(),
		Reason:         in.Reason,
		Actor:          GetActor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{
		Message: "Stock adjusted successfully",
		Product: *usecase.ToProductResponse(product),
	})
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         stock-movements
// @Produce      json
// @Param        product        query  string  false  "ID del producto"
// @Param        movement_type  query  string  false  "IN, OUT o ADJ"
// @Param        search         query  string  false  "Texto en motivo, referencia o actor"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, domain.Reject("Invalid query parameters"))
	}
	out, err := h.movements.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         stock-movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.movements.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMovement godoc
// @Summary      Registrar movimiento manual
// @Description  Solo auditoría: no modifica la cantidad del producto.
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, quantity, movement_type, reason, reference"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.movements.Create(c.UserContext(), in, GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
