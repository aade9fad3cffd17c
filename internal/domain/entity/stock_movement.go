package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MovementType tipo cerrado de movimiento de stock.
type MovementType string

const (
	MovementTypeIn     MovementType = "IN"  // entrada
	MovementTypeOut    MovementType = "OUT" // salida
	MovementTypeAdjust MovementType = "ADJ" // ajuste manual
)

// ParseMovementType valida el texto (sin distinguir mayúsculas) contra los tipos conocidos.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(strings.ToUpper(strings.TrimSpace(s))) {
	case MovementTypeIn:
		return MovementTypeIn, nil
	case MovementTypeOut:
		return MovementTypeOut, nil
	case MovementTypeAdjust:
		return MovementTypeAdjust, nil
	}
	return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
}

// Label texto legible del tipo.
func (t MovementType) Label() string {
	switch t {
	case MovementTypeIn:
		return "Stock In"
	case MovementTypeOut:
		return "Stock Out"
	case MovementTypeAdjust:
		return "Adjustment"
	}
	return string(t)
}

// UnmarshalJSON rechaza valores fuera del conjunto cerrado.
func (t *MovementType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMovementType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// StockMovement hecho de auditoría inmutable: cambio de cantidad de un producto.
// Quantity siempre es positiva; el sentido lo da Type.
type StockMovement struct {
	ID          string
	ProductID   string
	Quantity    int
	Type        MovementType
	Reason      string
	Reference   string // orden de compra/venta u otra referencia externa
	PerformedBy string
	Timestamp   time.Time

	// Solo lectura (JOIN).
	ProductName string
}
