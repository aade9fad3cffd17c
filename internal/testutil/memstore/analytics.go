package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

// Analytics devuelve el repositorio de analítica sobre los datos del store.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// AnalyticsRepo implementación en memoria de repository.AnalyticsRepository.
type AnalyticsRepo struct{ s *Store }

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

func (r *AnalyticsRepo) GetStockTotals(_ context.Context) (repository.StockTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := repository.StockTotals{
		InventoryValue: decimal.Zero,
		Categories:     len(r.s.categories),
		Suppliers:      len(r.s.suppliers),
	}
	for _, p := range r.s.products {
		if !p.IsActive {
			continue
		}
		t.ActiveProducts++
		if p.IsLowStock() {
			t.LowStock++
		}
		t.InventoryValue = t.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return t, nil
}

func (r *AnalyticsRepo) GetStockByCategory(_ context.Context) ([]repository.CategoryStockResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byID := map[string]*repository.CategoryStockResult{}
	for _, p := range r.s.products {
		if !p.IsActive {
			continue
		}
		row, ok := byID[p.CategoryID]
		if !ok {
			row = &repository.CategoryStockResult{CategoryID: p.CategoryID, CategoryName: r.s.categories[p.CategoryID].Name}
			byID[p.CategoryID] = row
		}
		row.Products++
		row.Units += p.Quantity
	}
	out := make([]repository.CategoryStockResult, 0, len(byID))
	for _, row := range byID {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units == out[j].Units {
			return out[i].CategoryName < out[j].CategoryName
		}
		return out[i].Units > out[j].Units
	})
	return out, nil
}

func (r *AnalyticsRepo) GetMovementsByDay(_ context.Context, from, to time.Time) ([]repository.DailyMovementResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byDay := map[time.Time]*repository.DailyMovementResult{}
	for _, m := range r.s.movements {
		if m.Timestamp.Before(from) || !m.Timestamp.Before(to) {
			continue
		}
		ts := m.Timestamp.UTC()
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		row, ok := byDay[day]
		if !ok {
			row = &repository.DailyMovementResult{Day: day}
			byDay[day] = row
		}
		switch m.Type {
		case entity.MovementTypeIn:
			row.In += m.Quantity
		case entity.MovementTypeOut:
			row.Out += m.Quantity
		case entity.MovementTypeAdjust:
			row.Adj += m.Quantity
		}
	}
	out := make([]repository.DailyMovementResult, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}
