package transfer

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// GetCart devuelve el carrito de transferencia de la sesión.
func (c *Coordinator) GetCart(ctx context.Context, sessionKey string) (*entity.TransferCart, error) {
	return c.carts.LoadTransferCart(ctx, sessionKey)
}

// AddToCart suma quantity unidades del producto al carrito de transferencia.
func (c *Coordinator) AddToCart(ctx context.Context, sessionKey, productID string, quantity int) (*entity.TransferCart, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return c.updateCart(ctx, sessionKey, func(cart *entity.TransferCart) { cart.Add(p, quantity) })
}

// SubtractFromCart resta una unidad (elimina el renglón al llegar a cero).
func (c *Coordinator) SubtractFromCart(ctx context.Context, sessionKey, productID string) (*entity.TransferCart, error) {
	return c.updateCart(ctx, sessionKey, func(cart *entity.TransferCart) { cart.Subtract(productID) })
}

// RemoveFromCart quita el producto del carrito.
func (c *Coordinator) RemoveFromCart(ctx context.Context, sessionKey, productID string) (*entity.TransferCart, error) {
	return c.updateCart(ctx, sessionKey, func(cart *entity.TransferCart) { cart.Remove(productID) })
}

// ClearCart vacía el carrito de transferencia.
func (c *Coordinator) ClearCart(ctx context.Context, sessionKey string) error {
	return c.carts.Clear(ctx, ports.CartKindTransfer, sessionKey)
}

// CreateFromCart crea una transferencia desde la sucursal del actor con el contenido del carrito.
// El carrito se vacía sólo si la transferencia se confirmó.
func (c *Coordinator) CreateFromCart(ctx context.Context, actor entity.Actor, sessionKey, destinationBranchID string) (*entity.Transfer, error) {
	if actor.BranchID == "" {
		return nil, domain.ErrForbidden
	}
	cart, err := c.carts.LoadTransferCart(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	in := CreateInput{OriginBranchID: actor.BranchID, DestinationBranchID: destinationBranchID}
	for _, item := range cart.Items() {
		in.Lines = append(in.Lines, LineInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	t, err := c.CreateTransfer(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	if err := c.carts.Clear(ctx, ports.CartKindTransfer, sessionKey); err != nil {
		c.log.Warn().Err(err).Str("transfer_id", t.ID).Msg("no se pudo vaciar el carrito de transferencia")
	}
	return t, nil
}

func (c *Coordinator) updateCart(ctx context.Context, sessionKey string, fn func(*entity.TransferCart)) (*entity.TransferCart, error) {
	cart, err := c.carts.LoadTransferCart(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := c.carts.SaveTransferCart(ctx, sessionKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
