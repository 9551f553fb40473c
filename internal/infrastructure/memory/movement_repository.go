package memory

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo log de movimientos en memoria (append-only).
type MovementRepo struct {
	store *Store
	inTx  bool
}

// NewMovementRepository repositorio fuera de transacción.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.store.view(r.inTx, func(d *state) {
		d.movements = append(d.movements, *m)
	})
	return nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID, branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m entity.StockMovement) bool {
		return m.ProductID == productID && (branchID == "" || m.BranchID == branchID)
	}, limit, offset), nil
}

func (r *MovementRepo) ListByBranch(_ context.Context, branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m entity.StockMovement) bool { return m.BranchID == branchID }, limit, offset), nil
}

// list recorre del más reciente al más antiguo.
func (r *MovementRepo) list(match func(entity.StockMovement) bool, limit, offset int) []*entity.StockMovement {
	var out []*entity.StockMovement
	r.store.view(r.inTx, func(d *state) {
		skipped := 0
		for i := len(d.movements) - 1; i >= 0; i-- {
			m := d.movements[i]
			if !match(m) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, &m)
		}
	})
	return out
}
