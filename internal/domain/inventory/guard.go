package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// Escala de product.price en la base (NUMERIC(10,2)).
const priceScale = 2

var maxPrice = decimal.New(1, 8) // 10 dígitos con 2 decimales

// ValidateProduct rechaza estados de producto inválidos antes de cualquier escritura.
// Devuelve *domain.ValidationError con el primer campo inválido.
func ValidateProduct(p *entity.Product) error {
	if p.Quantity < 0 {
		return domain.NewValidationError("quantity", "Quantity cannot be negative")
	}
	if p.Quantity > entity.MaxQuantity {
		return domain.NewValidationError("quantity", fmt.Sprintf("Quantity cannot exceed %d", entity.MaxQuantity))
	}
	if p.Price.IsNegative() {
		return domain.NewValidationError("price", "Price cannot be negative")
	}
	if !p.Price.Equal(p.Price.Truncate(priceScale)) {
		return domain.NewValidationError("price", "Price must have at most 2 decimal places")
	}
	if p.Price.GreaterThanOrEqual(maxPrice) {
		return domain.NewValidationError("price", "Price must have no more than 10 digits")
	}
	return nil
}
