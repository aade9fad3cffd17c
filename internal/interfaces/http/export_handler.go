package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/infrastructure/export"
)

// StockReportGenerator puerto del reporte PDF de existencias.
type StockReportGenerator interface {
	Generate(ctx context.Context, products []*entity.Product) ([]byte, error)
}

// ExportHandler descargas del listado de productos (CSV, XLSX, PDF) con los filtros del listado.
type ExportHandler struct {
	uc     *usecase.ProductUseCase
	report StockReportGenerator
}

// NewExportHandler construye el handler. report puede ser nil (sin exportación PDF).
func NewExportHandler(uc *usecase.ProductUseCase, report StockReportGenerator) *ExportHandler {
	return &ExportHandler{uc: uc, report: report}
}

func (h *ExportHandler) rows(c *fiber.Ctx) ([]*entity.Product, error) {
	filter, err := productFilter(c)
	if err != nil {
		return nil, err
	}
	return h.uc.ExportRows(c.UserContext(), filter)
}

// CSV godoc
// @Summary      Exportar productos a CSV
// @Tags         products
// @Produce      text/csv
// @Param        category   query  string  false  "ID de categoría"
// @Param        supplier   query  string  false  "ID de proveedor"
// @Param        is_active  query  bool    false  "Solo activos / inactivos"
// @Param        search     query  string  false  "Texto en nombre, SKU o descripción"
// @Param        low_stock  query  bool    false  "Solo con cantidad <= mínimo"
// @Param        encoding   query  string  false  "utf-8 (por defecto) o windows-1252"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/export_csv [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	enc, err := export.ParseEncoding(c.Query("encoding"))
	if err != nil {
		return writeError(c, domain.NewValidationError("encoding", "encoding must be utf-8 or windows-1252"))
	}
	products, err := h.rows(c)
	if err != nil {
		return writeError(c, err)
	}
	body, err := export.ProductsCSV(products, enc)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("products.csv")
	c.Set(fiber.HeaderContentType, enc.ContentType())
	return c.Send(body)
}

// XLSX godoc
// @Summary      Exportar productos a Excel
// @Tags         products
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        category   query  string  false  "ID de categoría"
// @Param        search     query  string  false  "Texto en nombre, SKU o descripción"
// @Param        low_stock  query  bool    false  "Solo con cantidad <= mínimo"
// @Success      200  {file}    file
// @Router       /api/products/export_xlsx [get]
func (h *ExportHandler) XLSX(c *fiber.Ctx) error {
	products, err := h.rows(c)
	if err != nil {
		return writeError(c, err)
	}
	body, err := export.ProductsXLSX(products)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("products.xlsx")
	c.Set(fiber.HeaderContentType, export.XLSXContentType)
	return c.Send(body)
}

// PDF godoc
// @Summary      Reporte de existencias en PDF
// @Tags         products
// @Produce      application/pdf
// @Param        low_stock  query  bool  false  "Solo con cantidad <= mínimo"
// @Success      200  {file}    file
// @Router       /api/products/export_pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	if h.report == nil {
		return writeError(c, fiber.ErrNotFound)
	}
	products, err := h.rows(c)
	if err != nil {
		return writeError(c, err)
	}
	body, err := h.report.Generate(c.UserContext(), products)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("stock_report.pdf")
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(body)
}
