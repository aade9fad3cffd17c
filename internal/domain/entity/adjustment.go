package entity

import (
	"fmt"
	"strings"
)

// AdjustmentType sentido de un ajuste de stock solicitado por el cliente.
type AdjustmentType string

const (
	AdjustmentAdd      AdjustmentType = "add"
	AdjustmentSubtract AdjustmentType = "subtract"
)

// ParseAdjustmentType valida el texto contra {add, subtract}.
func ParseAdjustmentType(s string) (AdjustmentType, error) {
	switch AdjustmentType(strings.ToLower(strings.TrimSpace(s))) {
	case AdjustmentAdd:
		return AdjustmentAdd, nil
	case AdjustmentSubtract:
		return AdjustmentSubtract, nil
	}
	return "", fmt.Errorf("tipo de ajuste desconocido: %q", s)
}

// Apply devuelve la cantidad resultante de aplicar el ajuste sobre current.
func (t AdjustmentType) Apply(current, quantity int) int {
	if t == AdjustmentSubtract {
		return current - quantity
	}
	return current + quantity
}
