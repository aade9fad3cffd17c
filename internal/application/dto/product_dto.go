package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto y para reemplazarlo completo (PUT).
// La cantidad negativa la rechaza el guard de producto con su propio mensaje.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	SKU           string           `json:"sku" validate:"required,max=50"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	Quantity      int              `json:"quantity"`
	MinStockLevel int              `json:"min_stock_level" validate:"min=0"`
	CategoryID    string           `json:"category_id" validate:"required"`
	SupplierID    string           `json:"supplier_id" validate:"required"`
	IsActive      *bool            `json:"is_active"` // por defecto true
}

// UpdateProductRequest actualización parcial (PATCH): solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=50"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Quantity      *int             `json:"quantity"`
	MinStockLevel *int             `json:"min_stock_level" validate:"omitempty,min=0"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,min=1"`
	SupplierID    *string          `json:"supplier_id" validate:"omitempty,min=1"`
	IsActive      *bool            `json:"is_active"`
}

// ProductResponse salida de un producto con los nombres relacionados y el indicador de stock bajo.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Description   string    `json:"description"`
	Price         string    `json:"price"` // dos decimales fijos, p. ej. "29.99"
	Quantity      int       `json:"quantity"`
	MinStockLevel int       `json:"min_stock_level"`
	CategoryID    string    `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	SupplierID    string    `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	IsActive      bool      `json:"is_active"`
	IsLowStock    bool      `json:"is_low_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse listado completo de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductListQuery filtros de GET /api/products y de las exportaciones.
type ProductListQuery struct {
	Category string `query:"category"`
	Supplier string `query:"supplier"`
	IsActive string `query:"is_active"` // "true"/"false"; vacío no filtra
	Search   string `query:"search"`
	LowStock string `query:"low_stock"`
}
