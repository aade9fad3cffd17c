package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-tracker-api/internal/domain"
	"github.com/jhoicas/stock-tracker-api/internal/domain/entity"
	"github.com/jhoicas/stock-tracker-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.product_id, m.quantity, m.movement_type, m.reason, m.reference,
	       m.performed_by, m.timestamp, p.name
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m  entity.StockMovement
		mt string
	)
	if err := row.Scan(&m.ID, &m.ProductID, &m.Quantity, &mt, &m.Reason, &m.Reference,
		&m.PerformedBy, &m.Timestamp, &m.ProductName); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(mt)
	return &m, nil
}

// Create persiste un movimiento. Los movimientos no se modifican después.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, quantity, movement_type, reason, reference, performed_by, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Quantity, string(m.Type), m.Reason, m.Reference, m.PerformedBy, m.Timestamp,
	)
	if err != nil {
		if isCheckViolation(err) || isForeignKeyViolation(err) {
			return fmt.Errorf("create stock movement: %w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; (nil, nil) si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	if !isUUID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, movementSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		conds []string
		args  []any
	)
	if f.ProductID != "" {
		if !isUUID(f.ProductID) {
			return []*entity.StockMovement{}, nil
		}
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("m.product_id = $%d", len(args)))
	}
	if f.Type != nil {
		args = append(args, string(*f.Type))
		conds = append(conds, fmt.Sprintf("m.movement_type = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		conds = append(conds, fmt.Sprintf("(m.reason ILIKE $%[1]d OR m.reference ILIKE $%[1]d OR m.performed_by ILIKE $%[1]d)", len(args)))
	}

	query := movementSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY m.timestamp DESC, m.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
