package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// AdjustStockRequest body de POST /api/products/{id}/adjust_stock.
// Quantity admite número o texto JSON; la validación la hace el caso de uso.
type AdjustStockRequest struct {
	AdjustmentType string          `json:"adjustment_type" example:"add"`
	Quantity       json.RawMessage `json:"quantity" swaggertype:"string" example:"5"`
	Reason         string          `json:"reason,omitempty" example:"Restock from supplier"`
}

// QuantityText devuelve la cantidad como texto o nil si no vino (o vino null).
func (r AdjustStockRequest) QuantityText() *string {
	raw := bytes.TrimSpace(r.Quantity)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	} else {
		s = string(raw)
	}
	return &s
}

// AdjustStockResponse respuesta de un ajuste aceptado.
type AdjustStockResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

// CreateMovementRequest body de POST /api/stock-movements (registro manual de auditoría).
type CreateMovementRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Quantity     int    `json:"quantity"`
	MovementType string `json:"movement_type" validate:"required"`
	Reason       string `json:"reason" validate:"max=200"`
	Reference    string `json:"reference" validate:"max=100"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	ProductName       string    `json:"product_name"`
	Quantity          int       `json:"quantity"`
	MovementType      string    `json:"movement_type"`
	MovementTypeLabel string    `json:"movement_type_display"`
	Reason            string    `json:"reason"`
	Reference         string    `json:"reference"`
	PerformedBy       string    `json:"performed_by"`
	Timestamp         time.Time `json:"timestamp"`
}

// MovementListResponse historial de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// MovementListQuery filtros de GET /api/stock-movements.
type MovementListQuery struct {
	Product      string `query:"product"`
	MovementType string `query:"movement_type"`
	Search       string `query:"search"`
}
