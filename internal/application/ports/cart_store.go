package ports

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// CartKind tipo de agregado de sesión.
type CartKind string

const (
	CartKindWeb      CartKind = "carrito"       // carrito de la tienda online
	CartKindTicket   CartKind = "ticket"        // ticket de venta mostrador
	CartKindTransfer CartKind = "transferencia" // carrito de transferencia entre sucursales
)

// CartStore define el puerto de salida para guardar los agregados de sesión.
// El caller carga el agregado, lo modifica y lo guarda explícitamente; no hay estado implícito.
// Los Load devuelven un agregado vacío si no hay nada guardado para la clave.
type CartStore interface {
	LoadCart(ctx context.Context, kind CartKind, key string) (*entity.Cart, error)
	SaveCart(ctx context.Context, kind CartKind, key string, cart *entity.Cart) error
	LoadTransferCart(ctx context.Context, key string) (*entity.TransferCart, error)
	SaveTransferCart(ctx context.Context, key string, cart *entity.TransferCart) error
	Clear(ctx context.Context, kind CartKind, key string) error
}
