// Package memstore implementa los repositorios y el TxRunner en memoria para tests de casos de
// uso y handlers. Reproduce las reglas del esquema: unicidad, claves foráneas, CHECK de cantidad
// y borrados en cascada.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

// Store datos en memoria compartidos por todos los repositorios.
type Store struct {
	mu         sync.Mutex
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	products   map[string]entity.Product
	movements  map[string]entity.StockMovement

	txMu            sync.Mutex
	failMovementErr error
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		categories: map[string]entity.Category{},
		suppliers:  map[string]entity.Supplier{},
		products:   map[string]entity.Product{},
		movements:  map[string]entity.StockMovement{},
	}
}

// FailNextMovement hace que el próximo insert de movimiento falle con err (prueba de rollback).
func (s *Store) FailNextMovement(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMovementErr = err
}

// Categories, Suppliers, Products y Movements devuelven repositorios fuera de transacción.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo  { return &SupplierRepo{s: s} }
func (s *Store) Products() *ProductRepo    { return &ProductRepo{s: s} }
func (s *Store) Movements() *MovementRepo  { return &MovementRepo{s: s} }

// TxRunner serializa las transacciones y restaura el estado previo si fn falla.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// MovementCount número de movimientos guardados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

type snapshot struct {
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	products   map[string]entity.Product
	movements  map[string]entity.StockMovement
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		categories: copyMap(s.categories),
		suppliers:  copyMap(s.suppliers),
		products:   copyMap(s.products),
		movements:  copyMap(s.movements),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = snap.categories
	s.suppliers = snap.suppliers
	s.products = snap.products
	s.movements = snap.movements
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// ─── TxRunner ───────────────────────────────────────────────────────────────

// TxRunner implementación en memoria de inventory.TxRunner.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con los repositorios del store; si falla restaura el snapshot.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	snap := r.s.snapshot()
	if err := fn(r.s.Products(), r.s.Movements()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ─── Categories ─────────────────────────────────────────────────────────────

// CategoryRepo repositorio de categorías en memoria.
type CategoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.categories {
		if id != c.ID && existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	r.s.cascadeProducts(func(p entity.Product) bool { return p.CategoryID == id })
	return nil
}

func (r *CategoryRepo) List(_ context.Context, search string) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if search != "" && !contains(c.Name, search) && !contains(c.Description, search) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ─── Suppliers ──────────────────────────────────────────────────────────────

// SupplierRepo repositorio de proveedores en memoria.
type SupplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.Name == sp.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r *SupplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.suppliers {
		if id != sp.ID && existing.Name == sp.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.suppliers, id)
	r.s.cascadeProducts(func(p entity.Product) bool { return p.SupplierID == id })
	return nil
}

func (r *SupplierRepo) List(_ context.Context, search string) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		if search != "" && !contains(sp.Name, search) && !contains(sp.ContactPerson, search) && !contains(sp.Email, search) {
			continue
		}
		sp := sp
		list = append(list, &sp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// cascadeProducts borra los productos que cumplen match y sus movimientos. Requiere mu tomado.
func (s *Store) cascadeProducts(match func(entity.Product) bool) {
	for id, p := range s.products {
		if match(p) {
			s.deleteProductLocked(id)
		}
	}
}

func (s *Store) deleteProductLocked(id string) {
	delete(s.products, id)
	for mid, m := range s.movements {
		if m.ProductID == id {
			delete(s.movements, mid)
		}
	}
}

// ─── Products ───────────────────────────────────────────────────────────────

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) checkRow(p *entity.Product) error {
	if p.Quantity < 0 || p.Price.IsNegative() {
		return fmt.Errorf("check constraint: %w", domain.ErrInvalidInput)
	}
	if _, ok := r.s.categories[p.CategoryID]; !ok {
		return fmt.Errorf("foreign key category_id: %w", domain.ErrInvalidInput)
	}
	if _, ok := r.s.suppliers[p.SupplierID]; !ok {
		return fmt.Errorf("foreign key supplier_id: %w", domain.ErrInvalidInput)
	}
	for id, existing := range r.s.products {
		if id != p.ID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if err := r.checkRow(p); err != nil {
		return err
	}
	row := *p
	row.CategoryName, row.SupplierName = "", ""
	r.s.products[p.ID] = row
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.readLocked(id), nil
}

// GetForUpdate en memoria el bloqueo lo da TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) readLocked(id string) *entity.Product {
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.CategoryName = r.s.categories[p.CategoryID].Name
	p.SupplierName = r.s.suppliers[p.SupplierID].Name
	return &p
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.checkRow(p); err != nil {
		return err
	}
	row := *p
	row.CreatedAt = existing.CreatedAt
	row.CategoryName, row.SupplierName = "", ""
	r.s.products[p.ID] = row
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteProductLocked(id)
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for id := range r.s.products {
		p := r.readLocked(id)
		switch {
		case f.CategoryID != "" && p.CategoryID != f.CategoryID,
			f.SupplierID != "" && p.SupplierID != f.SupplierID,
			f.IsActive != nil && p.IsActive != *f.IsActive,
			f.LowStockOnly && !p.IsLowStock(),
			f.Search != "" && !contains(p.Name, f.Search) && !contains(p.SKU, f.Search) && !contains(p.Description, f.Search):
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ─── Movements ──────────────────────────────────────────────────────────────

// MovementRepo repositorio de movimientos en memoria.
type MovementRepo struct{ s *Store }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failMovementErr; err != nil {
		r.s.failMovementErr = nil
		return err
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("check constraint quantity: %w", domain.ErrInvalidInput)
	}
	if _, ok := r.s.products[m.ProductID]; !ok {
		return fmt.Errorf("foreign key product_id: %w", domain.ErrInvalidInput)
	}
	if m.ID == "" {
		m.ID = fmt.Sprintf("mov-%d", len(r.s.movements)+1)
	}
	row := *m
	row.ProductName = ""
	r.s.movements[m.ID] = row
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	m.ProductName = r.s.products[m.ProductID].Name
	return &m, nil
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.StockMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		switch {
		case f.ProductID != "" && m.ProductID != f.ProductID,
			f.Type != nil && m.Type != *f.Type,
			f.Search != "" && !contains(m.Reason, f.Search) && !contains(m.Reference, f.Search) && !contains(m.PerformedBy, f.Search):
			continue
		}
		m := m
		m.ProductName = r.s.products[m.ProductID].Name
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].ID < list[j].ID
		}
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}
