package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria; los números se asignan en orden creciente desde 1.
type OrderRepo struct {
	store *Store
	inTx  bool
}

// NewOrderRepository repositorio fuera de transacción.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.store.view(r.inTx, func(d *state) {
		d.nextOrder++
		o.Number = d.nextOrder
		cp := *o
		cp.Items = nil
		d.orders[o.Number] = cp
	})
	return nil
}

func (r *OrderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		o, ok := d.orders[item.OrderNumber]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		o.Items = append(append([]entity.OrderItem(nil), o.Items...), *item)
		d.orders[o.Number] = o
	})
	return err
}

func (r *OrderRepo) GetByNumber(_ context.Context, number int64) (*entity.Order, error) {
	var out *entity.Order
	r.store.view(r.inTx, func(d *state) {
		if o, ok := d.orders[number]; ok {
			out = copyOrder(o)
		}
	})
	return out, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, number int64) (*entity.Order, error) {
	return r.GetByNumber(ctx, number)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		cur, ok := d.orders[o.Number]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		cur.Status = o.Status
		cur.PaymentMethod = o.PaymentMethod
		cur.FiscalNumber = o.FiscalNumber
		d.orders[o.Number] = cur
	})
	return err
}

func (r *OrderRepo) ListCashierQueue(_ context.Context, branchID string) ([]*entity.Order, error) {
	var out []*entity.Order
	r.store.view(r.inTx, func(d *state) {
		for _, o := range d.orders {
			if o.BranchID != branchID || o.Status == entity.OrderDelivered {
				continue
			}
			if o.Channel == entity.ChannelCounter || (o.Channel == entity.ChannelWeb && o.Modality == entity.ModalityPickup) {
				out = append(out, copyOrder(o))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func copyOrder(o entity.Order) *entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return &o
}
