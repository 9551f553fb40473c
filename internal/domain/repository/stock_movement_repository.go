package repository

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// StockMovementRepository puerto del log de movimientos (sólo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct y ListByBranch devuelven del más reciente al más antiguo.
	// productID o branchID vacíos no filtran.
	ListByProduct(ctx context.Context, productID, branchID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockMovement, error)
}
