package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo saldos en memoria.
type StockRepo struct {
	store *Store
	inTx  bool
}

// NewStockRepository repositorio fuera de transacción.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

func (r *StockRepo) Get(_ context.Context, productID, branchID string) (*entity.StockBalance, error) {
	var out *entity.StockBalance
	r.store.view(r.inTx, func(d *state) {
		if s, ok := d.stock[stockKey{productID, branchID}]; ok {
			out = &s
		}
	})
	return out, nil
}

// LockOrInit el lock lo da la transacción (mutex del Store); aquí sólo se crea la fila si falta.
func (r *StockRepo) LockOrInit(_ context.Context, productID, branchID string) (*entity.StockBalance, error) {
	var out entity.StockBalance
	r.store.view(r.inTx, func(d *state) {
		k := stockKey{productID, branchID}
		s, ok := d.stock[k]
		if !ok {
			s = *entity.NewStockBalance(productID, branchID)
			s.UpdatedAt = time.Now()
			d.stock[k] = s
		}
		out = s
	})
	return &out, nil
}

func (r *StockRepo) UpdateQuantity(_ context.Context, productID, branchID string, quantity int) error {
	r.store.view(r.inTx, func(d *state) {
		k := stockKey{productID, branchID}
		s, ok := d.stock[k]
		if !ok {
			s = *entity.NewStockBalance(productID, branchID)
		}
		s.Quantity = quantity
		s.UpdatedAt = time.Now()
		d.stock[k] = s
	})
	return nil
}

func (r *StockRepo) UpdateSettings(_ context.Context, productID, branchID string, minimum int, location string) error {
	r.store.view(r.inTx, func(d *state) {
		k := stockKey{productID, branchID}
		s, ok := d.stock[k]
		if !ok {
			s = *entity.NewStockBalance(productID, branchID)
		}
		s.MinimumThreshold = minimum
		s.Location = location
		s.UpdatedAt = time.Now()
		d.stock[k] = s
	})
	return nil
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	r.store.view(r.inTx, func(d *state) {
		for k, s := range d.stock {
			if k.productID == productID {
				s := s
				out = append(out, &s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].BranchID < out[j].BranchID })
	return out, nil
}

func (r *StockRepo) ListLowStock(_ context.Context, branchID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	r.store.view(r.inTx, func(d *state) {
		for k, s := range d.stock {
			if k.branchID == branchID && s.BelowMinimum() {
				s := s
				out = append(out, &s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}
