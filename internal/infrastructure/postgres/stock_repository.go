package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, branch_id, quantity, minimum_threshold, location, updated_at`

func scanStock(row pgx.Row) (*entity.StockBalance, error) {
	var s entity.StockBalance
	if err := row.Scan(&s.ProductID, &s.BranchID, &s.Quantity, &s.MinimumThreshold, &s.Location, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene el saldo de un producto en una sucursal; nil si no hay fila.
func (r *StockRepo) Get(ctx context.Context, productID, branchID string) (*entity.StockBalance, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND branch_id = $2`
	s, err := scanStock(r.q.QueryRow(ctx, query, productID, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// LockOrInit crea la fila si falta y la bloquea (SELECT FOR UPDATE).
// Dos transacciones sobre el mismo par se serializan aquí.
func (r *StockRepo) LockOrInit(ctx context.Context, productID, branchID string) (*entity.StockBalance, error) {
	insert := `
		INSERT INTO stock (product_id, branch_id, quantity, minimum_threshold, location, updated_at)
		VALUES ($1, $2, 0, $3, $4, now())
		ON CONFLICT (product_id, branch_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, branchID, entity.DefaultMinimumThreshold, entity.LocationAlmacen); err != nil {
		return nil, fmt.Errorf("init stock: %w", err)
	}
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND branch_id = $2 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(ctx, query, productID, branchID))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// UpdateQuantity fija la cantidad; el CHECK (quantity >= 0) es la última barrera.
func (r *StockRepo) UpdateQuantity(ctx context.Context, productID, branchID string, quantity int) error {
	query := `UPDATE stock SET quantity = $3, updated_at = now() WHERE product_id = $1 AND branch_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, branchID, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSettings cambia umbral mínimo y ubicación.
func (r *StockRepo) UpdateSettings(ctx context.Context, productID, branchID string, minimum int, location string) error {
	query := `
		UPDATE stock SET minimum_threshold = $3, location = $4, updated_at = now()
		WHERE product_id = $1 AND branch_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, branchID, minimum, location)
	if err != nil {
		return fmt.Errorf("update stock settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLowStock saldos en o bajo el umbral mínimo, primero los de menor cantidad.
func (r *StockRepo) ListLowStock(ctx context.Context, branchID string) ([]*entity.StockBalance, error) {
	query := `SELECT ` + stockColumns + ` FROM stock
		WHERE branch_id = $1 AND quantity <= minimum_threshold
		ORDER BY quantity ASC, product_id ASC`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListByProduct saldos del producto en cada sucursal que tenga fila.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 ORDER BY branch_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
