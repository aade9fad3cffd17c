package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de inventario.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetStockTotals cuenta productos activos, los de stock bajo y el valor del inventario.
func (r *AnalyticsRepo) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE p.is_active)                                        AS active_products,
	    COUNT(*) FILTER (WHERE p.is_active AND p.quantity <= p.min_stock_level)    AS low_stock,
	    COALESCE(SUM(p.price * p.quantity) FILTER (WHERE p.is_active), 0)          AS inventory_value,
	    (SELECT COUNT(*) FROM categories)                                          AS categories,
	    (SELECT COUNT(*) FROM suppliers)                                           AS suppliers
	FROM products p`

	var t repository.StockTotals
	err := r.q.QueryRow(ctx, query).Scan(
		&t.ActiveProducts,
		&t.LowStock,
		&t.InventoryValue,
		&t.Categories,
		&t.Suppliers,
	)
	if err != nil {
		return repository.StockTotals{}, fmt.Errorf("analytics.GetStockTotals: %w", err)
	}
	return t, nil
}

// GetStockByCategory agrupa las unidades de los productos activos por categoría.
func (r *AnalyticsRepo) GetStockByCategory(ctx context.Context) ([]repository.CategoryStockResult, error) {
	const query = `
	SELECT c.id, c.name, COUNT(p.id), COALESCE(SUM(p.quantity), 0)
	FROM categories c
	JOIN products p ON p.category_id = c.id AND p.is_active
	GROUP BY c.id, c.name
	ORDER BY 4 DESC, c.name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStockByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStockResult
	for rows.Next() {
		var row repository.CategoryStockResult
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Products, &row.Units); err != nil {
			return nil, fmt.Errorf("analytics.GetStockByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMovementsByDay suma cantidades por día (UTC) y tipo.
func (r *AnalyticsRepo) GetMovementsByDay(ctx context.Context, from, to time.Time) ([]repository.DailyMovementResult, error) {
	const query = `
	SELECT
	    date_trunc('day', m.timestamp AT TIME ZONE 'UTC')                        AS day,
	    COALESCE(SUM(m.quantity) FILTER (WHERE m.movement_type = 'IN'), 0)       AS qty_in,
	    COALESCE(SUM(m.quantity) FILTER (WHERE m.movement_type = 'OUT'), 0)      AS qty_out,
	    COALESCE(SUM(m.quantity) FILTER (WHERE m.movement_type = 'ADJ'), 0)      AS qty_adj
	FROM stock_movements m
	WHERE m.timestamp >= $1 AND m.timestamp < $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementsByDay: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyMovementResult
	for rows.Next() {
		var row repository.DailyMovementResult
		if err := rows.Scan(&row.Day, &row.In, &row.Out, &row.Adj); err != nil {
			return nil, fmt.Errorf("analytics.GetMovementsByDay scan: %w", err)
		}
		row.Day = time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
		results = append(results, row)
	}
	return results, rows.Err()
}
