package repository

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia de pedidos web y de mostrador.
type OrderRepository interface {
	// Create inserta la cabecera y asigna order.Number.
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	// GetByNumber devuelve el pedido con sus renglones, o nil si no existe.
	GetByNumber(ctx context.Context, number int64) (*entity.Order, error)
	GetForUpdate(ctx context.Context, number int64) (*entity.Order, error)
	// Update persiste estado, forma de pago y número de operación fiscal.
	Update(ctx context.Context, order *entity.Order) error
	// ListCashierQueue pedidos de mostrador y pedidos web para retirar aún no entregados,
	// del más reciente al más antiguo.
	ListCashierQueue(ctx context.Context, branchID string) ([]*entity.Order, error)
}
