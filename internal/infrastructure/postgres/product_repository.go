package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.sku, p.description, p.price, p.quantity, p.min_stock_level,
	       p.category_id, p.supplier_id, p.is_active, p.created_at, p.updated_at,
	       c.name, s.name
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN suppliers s ON s.id = p.supplier_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Description, &p.Price, &p.Quantity, &p.MinStockLevel,
		&p.CategoryID, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, description, price, quantity, min_stock_level,
		                      category_id, supplier_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Description, p.Price, p.Quantity, p.MinStockLevel,
		p.CategoryID, p.SupplierID, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapProductWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con nombres de categoría y proveedor.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, productSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila del producto (SELECT FOR UPDATE).
// Solo tiene efecto dentro de una transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update reemplaza todos los campos editables, incluida la cantidad.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, sku = $3, description = $4, price = $5, quantity = $6, min_stock_level = $7,
		    category_id = $8, supplier_id = $9, is_active = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Description, p.Price, p.Quantity, p.MinStockLevel,
		p.CategoryID, p.SupplierID, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return mapProductWriteError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto; sus movimientos caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos aplicando los filtros presentes, ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID != "" {
		if !isUUID(f.CategoryID) {
			return []*entity.Product{}, nil
		}
		add("p.category_id = $%d", f.CategoryID)
	}
	if f.SupplierID != "" {
		if !isUUID(f.SupplierID) {
			return []*entity.Product{}, nil
		}
		add("p.supplier_id = $%d", f.SupplierID)
	}
	if f.IsActive != nil {
		add("p.is_active = $%d", *f.IsActive)
	}
	if f.Search != "" {
		add("(p.name ILIKE $%[1]d OR p.sku ILIKE $%[1]d OR p.description ILIKE $%[1]d)", likePattern(f.Search))
	}
	if f.LowStockOnly {
		conds = append(conds, "p.quantity <= p.min_stock_level")
	}

	query := productSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func mapProductWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrInvalidInput, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: categoría o proveedor inexistente", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
