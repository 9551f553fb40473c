package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos sobre PostgreSQL (usable con pool o tx). El número lo asigna BIGSERIAL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT number, customer, phone, address, branch_id, modality, total, status, channel,
	       payment_method, fiscal_number, replacement_option, seller_id, created_at
	FROM orders`

// Create persiste la cabecera y completa order.Number.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (customer, phone, address, branch_id, modality, total, status, channel,
		                    payment_method, fiscal_number, replacement_option, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING number`
	err := r.q.QueryRow(ctx, query,
		o.Customer, nullIfEmpty(o.Phone), nullIfEmpty(o.Address), o.BranchID, o.Modality, o.Total, o.Status, o.Channel,
		nullIfEmpty(o.PaymentMethod), nullIfEmpty(o.FiscalNumber), nullIfEmpty(o.ReplacementOption),
		nullIfEmpty(o.SellerID), o.CreatedAt,
	).Scan(&o.Number)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste un renglón.
func (r *OrderRepo) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_number, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrderNumber, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByNumber pedido con renglones; nil si no existe.
func (r *OrderRepo) GetByNumber(ctx context.Context, number int64) (*entity.Order, error) {
	return r.get(ctx, orderSelect+` WHERE number = $1`, number)
}

// GetForUpdate igual que GetByNumber bloqueando la cabecera.
func (r *OrderRepo) GetForUpdate(ctx context.Context, number int64) (*entity.Order, error) {
	return r.get(ctx, orderSelect+` WHERE number = $1 FOR UPDATE`, number)
}

// Update persiste estado, forma de pago y número fiscal.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `UPDATE orders SET status = $2, payment_method = $3, fiscal_number = $4 WHERE number = $1`
	tag, err := r.q.Exec(ctx, query, o.Number, o.Status, nullIfEmpty(o.PaymentMethod), nullIfEmpty(o.FiscalNumber))
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCashierQueue mostrador y web para retirar, no entregados, del más reciente al más antiguo.
func (r *OrderRepo) ListCashierQueue(ctx context.Context, branchID string) ([]*entity.Order, error) {
	query := orderSelect + `
		WHERE branch_id = $1 AND status <> $2
		  AND (channel = $3 OR (channel = $4 AND modality = $5))
		ORDER BY number DESC`
	rows, err := r.q.Query(ctx, query, branchID, entity.OrderDelivered,
		entity.ChannelCounter, entity.ChannelWeb, entity.ModalityPickup)
	if err != nil {
		return nil, fmt.Errorf("list cashier queue: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.Number); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) get(ctx context.Context, query string, number int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.Number); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) items(ctx context.Context, number int64) ([]entity.OrderItem, error) {
	query := `
		SELECT i.id, i.order_number, i.product_id, p.name, COALESCE(p.sku, ''), i.quantity, i.unit_price, i.subtotal
		FROM order_items i JOIN products p ON p.id = i.product_id
		WHERE i.order_number = $1 ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, number)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderNumber, &it.ProductID, &it.ProductName, &it.SKU,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var phone, address, payment, fiscal, replacement, seller *string
	if err := row.Scan(&o.Number, &o.Customer, &phone, &address, &o.BranchID, &o.Modality, &o.Total, &o.Status,
		&o.Channel, &payment, &fiscal, &replacement, &seller, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Phone = derefString(phone)
	o.Address = derefString(address)
	o.PaymentMethod = derefString(payment)
	o.FiscalNumber = derefString(fiscal)
	o.ReplacementOption = derefString(replacement)
	o.SellerID = derefString(seller)
	return &o, nil
}
