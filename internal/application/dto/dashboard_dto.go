package dto

// DashboardSummaryDTO resumen del inventario para el panel principal.
type DashboardSummaryDTO struct {
	ActiveProducts  int                `json:"active_products"`
	LowStockCount   int                `json:"low_stock_count"`
	InventoryValue  string             `json:"inventory_value"` // dos decimales fijos
	Categories      int                `json:"categories"`
	Suppliers       int                `json:"suppliers"`
	StockByCategory []CategoryStockDTO `json:"stock_by_category"`
	MovementsByDay  []DailyMovementDTO `json:"movements_by_day"` // últimos 7 días, incluye días sin movimientos
	LowStock        []ProductResponse  `json:"low_stock"`
}

// CategoryStockDTO unidades activas por categoría.
type CategoryStockDTO struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Products     int    `json:"products"`
	Units        int    `json:"units"`
}

// DailyMovementDTO cantidades movidas en un día (YYYY-MM-DD, UTC).
type DailyMovementDTO struct {
	Date string `json:"date"`
	IN   int    `json:"IN"`
	OUT  int    `json:"OUT"`
	ADJ  int    `json:"ADJ"`
}
