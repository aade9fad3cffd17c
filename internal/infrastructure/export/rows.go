// Package export serializa el listado de productos a CSV y XLSX.
package export

import (
	"strconv"
	"time"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// ProductHeaders columnas de la exportación, en orden.
var ProductHeaders = []string{
	"SKU", "Name", "Description", "Price", "Quantity", "Min Stock Level",
	"Category", "Supplier", "Active", "Created At", "Updated At",
}

const timestampLayout = "2006-01-02 15:04:05"

// ProductRecord fila de texto de un producto, alineada con ProductHeaders.
func ProductRecord(p *entity.Product) []string {
	return []string{
		p.SKU,
		p.Name,
		p.Description,
		p.Price.StringFixed(2),
		strconv.Itoa(p.Quantity),
		strconv.Itoa(p.MinStockLevel),
		p.CategoryName,
		p.SupplierName,
		yesNo(p.IsActive),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
