package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity límite de products.quantity y stock_movements.quantity (columna INTEGER).
const MaxQuantity = math.MaxInt32

// Product representa un producto del inventario con su stock actual.
// Quantity solo cambia mediante ProductWriter, que deja el rastro en StockMovement.
type Product struct {
	ID            string
	Name          string
	SKU           string // código único
	Description   string
	Price         decimal.Decimal // NUMERIC(10,2), no negativo
	Quantity      int
	MinStockLevel int
	CategoryID    string
	SupplierID    string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Solo lectura: se rellenan con JOIN al consultar.
	CategoryName string
	SupplierName string
}

// IsLowStock indica si la cantidad llegó o bajó del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}
