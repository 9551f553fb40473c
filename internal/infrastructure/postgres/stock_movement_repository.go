package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo log de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, branch_id, kind, delta, balance_before, balance_after, user_id, note, created_at`

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.BranchID, string(m.Kind), m.Delta, m.BalanceBefore, m.BalanceAfter,
		nullIfEmpty(m.UserID), nullIfEmpty(m.Note), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, opcionalmente de una sola sucursal.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID, branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1 AND ($2::uuid IS NULL OR branch_id = $2::uuid)
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, productID, nullIfEmpty(branchID), limitOrNil(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return collectMovements(rows)
}

// ListByBranch movimientos de una sucursal.
func (r *StockMovementRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE branch_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, branchID, limitOrNil(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by branch: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var kind string
		var userID, note *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.BranchID, &kind, &m.Delta, &m.BalanceBefore, &m.BalanceAfter,
			&userID, &note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		m.UserID = derefString(userID)
		m.Note = derefString(note)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// limitOrNil LIMIT NULL equivale a sin límite.
func limitOrNil(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
