// Package analytics contiene el caso de uso del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

const dashboardDays = 7 // ventana del gráfico de movimientos

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y el listado de stock bajo de
// ProductRepository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. GetStockTotals          → contadores y valor del inventario
//  2. GetStockByCategory      → unidades por categoría
//  3. GetMovementsByDay(7 d)  → gráfico de movimientos
//  4. List(low_stock, activos) → tabla de reposición
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -(dashboardDays - 1))
	to := today.AddDate(0, 0, 1)

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type totalsResult struct {
		totals repository.StockTotals
		err    error
	}
	type categoriesResult struct {
		rows []repository.CategoryStockResult
		err  error
	}
	type daysResult struct {
		rows []repository.DailyMovementResult
		err  error
	}
	type lowStockResult struct {
		products []*entity.Product
		err      error
	}

	totalsCh := make(chan totalsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)
	daysCh := make(chan daysResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetStockTotals(ctx)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetStockByCategory(ctx)
		categoriesCh <- categoriesResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMovementsByDay(ctx, from, to)
		daysCh <- daysResult{rows, err}
	}()
	go func() {
		active := true
		list, err := uc.productRepo.List(ctx, repository.ProductFilter{IsActive: &active, LowStockOnly: true})
		lowCh <- lowStockResult{list, err}
	}()

	totals := <-totalsCh
	categories := <-categoriesCh
	days := <-daysCh
	low := <-lowCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: stock por categoría: %w", categories.err)
	}
	if days.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos por día: %w", days.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		ActiveProducts:  totals.totals.ActiveProducts,
		LowStockCount:   totals.totals.LowStock,
		InventoryValue:  totals.totals.InventoryValue.StringFixed(2),
		Categories:      totals.totals.Categories,
		Suppliers:       totals.totals.Suppliers,
		StockByCategory: make([]dto.CategoryStockDTO, 0, len(categories.rows)),
		MovementsByDay:  fillDays(from, dashboardDays, days.rows),
		LowStock:        make([]dto.ProductResponse, 0, len(low.products)),
	}
	for _, row := range categories.rows {
		out.StockByCategory = append(out.StockByCategory, dto.CategoryStockDTO{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Products:     row.Products,
			Units:        row.Units,
		})
	}
	for _, p := range low.products {
		out.LowStock = append(out.LowStock, *usecase.ToProductResponse(p))
	}
	return out, nil
}

// fillDays devuelve n días consecutivos desde from; los días sin movimientos van en cero.
func fillDays(from time.Time, n int, rows []repository.DailyMovementResult) []dto.DailyMovementDTO {
	byDay := make(map[string]repository.DailyMovementResult, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format(time.DateOnly)] = r
	}
	out := make([]dto.DailyMovementDTO, 0, n)
	for i := 0; i < n; i++ {
		day := from.AddDate(0, 0, i).Format(time.DateOnly)
		r := byDay[day]
		out = append(out, dto.DailyMovementDTO{Date: day, IN: r.In, OUT: r.Out, ADJ: r.Adj})
	}
	return out
}
