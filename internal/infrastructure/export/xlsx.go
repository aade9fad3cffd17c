package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
)

// XLSXContentType tipo MIME de un libro .xlsx.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const productsSheet = "Products"

// ProductsXLSX genera un libro con la hoja "Products": cabecera en negrita y los mismos
// valores que el CSV, salvo precio y cantidades que van como números.
func ProductsXLSX(products []*entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range ProductHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(productsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ProductHeaders))
	if err := f.SetCellStyle(productsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, p := range products {
		record := ProductRecord(p)
		values := make([]any, len(record))
		for j, v := range record {
			values[j] = v
		}
		values[3] = p.Price.InexactFloat64()
		values[4] = p.Quantity
		values[5] = p.MinStockLevel

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(productsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %s: %w", p.SKU, err)
		}
	}

	widths := []float64{14, 28, 36, 10, 10, 14, 18, 18, 8, 20, 20}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(productsSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("xlsx: ancho: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
