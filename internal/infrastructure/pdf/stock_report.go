// Package pdf genera el reporte de existencias en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Categoría | Cant. | Mín. | Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / stock bajo / valor del inventario     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator genera el reporte de existencias con Maroto v2.
type StockReportGenerator struct {
	title string
	now   func() time.Time
}

// NewStockReportGenerator construye el generador. title aparece en cabecera y metadatos.
func NewStockReportGenerator(title string) *StockReportGenerator {
	if title == "" {
		title = "Stock Report"
	}
	return &StockReportGenerator{title: title, now: func() time.Time { return time.Now().UTC() }}
}

// Generate devuelve los bytes del PDF para los productos dados (en el orden recibido).
func (g *StockReportGenerator) Generate(_ context.Context, products []*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generated: "+at.Format("2006-01-02 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Product", 4, align.Left),
		h("Category", 2, align.Left),
		h("Qty", 1, align.Right),
		h("Min", 1, align.Right),
		h("Status", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		status, statusColor := "OK", colorGray
		if p.IsLowStock() {
			status, statusColor = "LOW STOCK", colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(7).Add(
			cell(p.SKU, 2, align.Left),
			cell(p.Name, 4, align.Left),
			cell(nonEmpty(p.CategoryName, "-"), 2, align.Left),
			cell(strconv.Itoa(p.Quantity), 1, align.Right),
			cell(strconv.Itoa(p.MinStockLevel), 1, align.Right),
			col.New(2).Add(text.New(status, props.Text{
				Size: 8, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: statusColor,
			})),
		))
	}
	return rows
}

func summaryRow(products []*entity.Product) core.Row {
	low := 0
	value := decimal.Zero
	for _, p := range products {
		if p.IsLowStock() {
			low++
		}
		value = value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Products: %d   |   Low stock: %d   |   Inventory value: %s",
				len(products), low, value.StringFixed(2)),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
