// Package seed carga el catálogo de demostración (categorías, proveedores y productos).
// Es idempotente: lo que ya existe por nombre o SKU no se toca.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

// Summary resultado de una carga.
type Summary struct {
	Categories int // creadas en esta ejecución
	Suppliers  int
	Products   int
}

type productSeed struct {
	name, sku, description, price string
	quantity, minStock            int
	category, supplier            string
}

var categories = []dto.CategoryRequest{
	{Name: "Electronics", Description: "Electronic devices and accessories"},
	{Name: "Office Supplies", Description: "Stationery and office equipment"},
}

var suppliers = []dto.SupplierRequest{
	{Name: "TechCorp Inc", ContactPerson: "Steve Johnson", Email: "steve@techcorp.com", Phone: "+1-555-0123", Address: "123 Tech Street, Silicon Valley, CA 94305"},
	{Name: "Office Solutions", ContactPerson: "Sarah Davis", Email: "sarah@officesolutions.com", Phone: "+1-555-0456", Address: "456 Business Ave, New York, NY 10001"},
}

var products = []productSeed{
	{"Wireless Laptop", "LT-WR-001", "15-inch wireless laptop with 16GB RAM and 512GB SSD", "1299.99", 15, 5, "Electronics", "TechCorp Inc"},
	{"Bluetooth Mouse", "MSE-BT-002", "Wireless Bluetooth mouse with ergonomic design", "49.99", 45, 10, "Electronics", "TechCorp Inc"},
	{"USB Keyboard", "KB-USB-003", "Mechanical USB keyboard with backlit keys", "89.99", 8, 12, "Electronics", "TechCorp Inc"},
	{"Printer Paper", "PP-A4-010", "500 sheets, A4 size, 80gsm printer paper", "12.99", 25, 20, "Office Supplies", "Office Solutions"},
	{"Desk Lamp", "LAM-DESK-005", "Adjustable LED desk lamp with USB charging port", "39.99", 2, 8, "Office Supplies", "Office Solutions"},
}

// Seeder aplica el catálogo a través de los casos de uso.
type Seeder struct {
	categories *usecase.CategoryUseCase
	suppliers  *usecase.SupplierUseCase
	products   *usecase.ProductUseCase
}

// NewSeeder construye el seeder.
func NewSeeder(categories *usecase.CategoryUseCase, suppliers *usecase.SupplierUseCase, products *usecase.ProductUseCase) *Seeder {
	return &Seeder{categories: categories, suppliers: suppliers, products: products}
}

// Run crea lo que falte y devuelve cuántos registros nuevos hubo.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	categoryIDs := make(map[string]string, len(categories))
	for _, in := range categories {
		id, created, err := s.category(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("categoría %q: %w", in.Name, err)
		}
		categoryIDs[in.Name] = id
		if created {
			sum.Categories++
		}
	}

	supplierIDs := make(map[string]string, len(suppliers))
	for _, in := range suppliers {
		id, created, err := s.supplier(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("proveedor %q: %w", in.Name, err)
		}
		supplierIDs[in.Name] = id
		if created {
			sum.Suppliers++
		}
	}

	for _, p := range products {
		created, err := s.product(ctx, p, categoryIDs[p.category], supplierIDs[p.supplier])
		if err != nil {
			return sum, fmt.Errorf("producto %s: %w", p.sku, err)
		}
		if created {
			sum.Products++
		}
	}
	return sum, nil
}

func (s *Seeder) category(ctx context.Context, in dto.CategoryRequest) (string, bool, error) {
	list, err := s.categories.List(ctx, in.Name)
	if err != nil {
		return "", false, err
	}
	for _, c := range list.Items {
		if strings.EqualFold(c.Name, in.Name) {
			return c.ID, false, nil
		}
	}
	out, err := s.categories.Create(ctx, in)
	if err != nil {
		return "", false, err
	}
	return out.ID, true, nil
}

func (s *Seeder) supplier(ctx context.Context, in dto.SupplierRequest) (string, bool, error) {
	list, err := s.suppliers.List(ctx, in.Name)
	if err != nil {
		return "", false, err
	}
	for _, sp := range list.Items {
		if strings.EqualFold(sp.Name, in.Name) {
			return sp.ID, false, nil
		}
	}
	out, err := s.suppliers.Create(ctx, in)
	if err != nil {
		return "", false, err
	}
	return out.ID, true, nil
}

func (s *Seeder) product(ctx context.Context, p productSeed, categoryID, supplierID string) (bool, error) {
	list, err := s.products.List(ctx, repository.ProductFilter{Search: p.sku})
	if err != nil {
		return false, err
	}
	for _, existing := range list.Items {
		if existing.SKU == p.sku {
			return false, nil
		}
	}
	price := decimal.RequireFromString(p.price)
	active := true
	_, err = s.products.Create(ctx, dto.CreateProductRequest{
		Name:          p.name,
		SKU:           p.sku,
		Description:   p.description,
		Price:         &price,
		Quantity:      p.quantity,
		MinStockLevel: p.minStock,
		CategoryID:    categoryID,
		SupplierID:    supplierID,
		IsActive:      &active,
	})
	return err == nil, err
}
