package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotals cifras globales del inventario (solo productos activos salvo los conteos de catálogo).
type StockTotals struct {
	ActiveProducts int
	LowStock       int             // activos con quantity <= min_stock_level
	InventoryValue decimal.Decimal // Σ price × quantity de los activos
	Categories     int
	Suppliers      int
}

// CategoryStockResult unidades en stock por categoría (productos activos).
type CategoryStockResult struct {
	CategoryID   string
	CategoryName string
	Products     int
	Units        int
}

// DailyMovementResult suma de cantidades por día y tipo de movimiento.
type DailyMovementResult struct {
	Day time.Time // 00:00 UTC
	In  int
	Out int
	Adj int
}

// AnalyticsRepository consultas de solo lectura para el dashboard de inventario.
type AnalyticsRepository interface {
	GetStockTotals(ctx context.Context) (StockTotals, error)

	// GetStockByCategory ordena por unidades descendente.
	GetStockByCategory(ctx context.Context) ([]CategoryStockResult, error)

	// GetMovementsByDay solo devuelve los días con movimientos dentro de [from, to).
	GetMovementsByDay(ctx context.Context, from, to time.Time) ([]DailyMovementResult, error)
}
