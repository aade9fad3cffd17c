package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Toda escritura pasa por ProductWriter, así que
// un cambio de cantidad deja su movimiento en la misma transacción.
type ProductUseCase struct {
	txRunner   inventory.TxRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	writer     *inventory.ProductWriter
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	writer *inventory.ProductWriter,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:   txRunner,
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		writer:     writer,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create crea un producto. La creación no registra movimiento.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := uc.now()
	product := &entity.Product{ID: uuid.New().String(), CreatedAt: now}
	if err := uc.applyFull(ctx, product, in, now); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		_, err := uc.writer.Commit(ctx, productRepo, movRepo, nil, product, inventory.WriteOptions{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, product.ID)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	return uc.reload(ctx, id)
}

// Replace reemplaza todos los campos (PUT). Un cambio de cantidad registra movimiento con el
// motivo por defecto y actor como performed_by.
func (uc *ProductUseCase) Replace(ctx context.Context, id string, in dto.CreateProductRequest, actor string) (*dto.ProductResponse, error) {
	return uc.mutate(ctx, id, actor, func(p *entity.Product, now time.Time) error {
		return uc.applyFull(ctx, p, in, now)
	})
}

// Update aplica solo los campos presentes (PATCH).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, actor string) (*dto.ProductResponse, error) {
	return uc.mutate(ctx, id, actor, func(p *entity.Product, now time.Time) error {
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.SKU != nil {
			p.SKU = strings.TrimSpace(*in.SKU)
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if in.MinStockLevel != nil {
			p.MinStockLevel = *in.MinStockLevel
		}
		if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
			if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
				return err
			}
			p.CategoryID = *in.CategoryID
		}
		if in.SupplierID != nil && *in.SupplierID != p.SupplierID {
			if err := uc.checkSupplier(ctx, *in.SupplierID); err != nil {
				return err
			}
			p.SupplierID = *in.SupplierID
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		p.UpdatedAt = now
		return nil
	})
}

// mutate lee el estado previo con bloqueo de fila, aplica change y confirma vía ProductWriter.
func (uc *ProductUseCase) mutate(ctx context.Context, id, actor string, change func(*entity.Product, time.Time) error) (*dto.ProductResponse, error) {
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		old := product.Quantity
		if err := change(product, uc.now()); err != nil {
			return err
		}
		_, err = uc.writer.Commit(ctx, productRepo, movRepo, &old, product, inventory.WriteOptions{Actor: actor})
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, id)
}

// Delete elimina el producto y su historial de movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.products.Delete(ctx, id)
}

// List lista productos con los filtros indicados.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// ExportRows productos filtrados en el orden de listado, para CSV/XLSX/PDF.
func (uc *ProductUseCase) ExportRows(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return uc.products.List(ctx, filter)
}

// ParseProductFilter traduce los query params. Booleanos inválidos -> ValidationError.
func ParseProductFilter(q dto.ProductListQuery) (repository.ProductFilter, error) {
	f := repository.ProductFilter{
		CategoryID: strings.TrimSpace(q.Category),
		SupplierID: strings.TrimSpace(q.Supplier),
		Search:     strings.TrimSpace(q.Search),
	}
	if v := strings.TrimSpace(q.IsActive); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, domain.NewValidationError("is_active", "is_active must be true or false")
		}
		f.IsActive = &b
	}
	if v := strings.TrimSpace(q.LowStock); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, domain.NewValidationError("low_stock", "low_stock must be true or false")
		}
		f.LowStockOnly = b
	}
	return f, nil
}

func (uc *ProductUseCase) applyFull(ctx context.Context, p *entity.Product, in dto.CreateProductRequest, now time.Time) error {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	if sku == "" {
		return domain.NewValidationError("sku", "sku is required")
	}
	if in.Price == nil {
		return domain.NewValidationError("price", "price is required")
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return err
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return err
	}
	p.Name = name
	p.SKU = sku
	p.Description = in.Description
	p.Price = *in.Price
	p.Quantity = in.Quantity
	p.MinStockLevel = in.MinStockLevel
	p.CategoryID = in.CategoryID
	p.SupplierID = in.SupplierID
	p.IsActive = in.IsActive == nil || *in.IsActive
	p.UpdatedAt = now
	return nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, id string) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError("category_id", "Category does not exist")
	}
	return nil
}

func (uc *ProductUseCase) checkSupplier(ctx context.Context, id string) error {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewValidationError("supplier_id", "Supplier does not exist")
	}
	return nil
}

func (uc *ProductUseCase) reload(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(p), nil
}

// ToProductResponse mapea el modelo de lectura al DTO (precio con dos decimales fijos).
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		Quantity:      p.Quantity,
		MinStockLevel: p.MinStockLevel,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		IsActive:      p.IsActive,
		IsLowStock:    p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
