// Package sales carrito web, ticket de mostrador y pedidos.
package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

// CartService opera sobre los agregados de sesión (carrito web y ticket).
// Cada operación carga el agregado, lo modifica y lo guarda.
type CartService struct {
	carts    ports.CartStore
	products repository.ProductRepository
}

// NewCartService construye el servicio.
func NewCartService(carts ports.CartStore, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get devuelve el carrito de la sesión (vacío si no hay).
func (s *CartService) Get(ctx context.Context, kind ports.CartKind, key string) (*entity.Cart, error) {
	return s.carts.LoadCart(ctx, kind, key)
}

// Add suma una unidad del producto al precio vigente.
func (s *CartService) Add(ctx context.Context, kind ports.CartKind, key, productID string) (*entity.Cart, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrNotFound
	}
	price, err := s.products.CurrentPrice(ctx, productID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, fmt.Errorf("%w: el producto %s no tiene precio", domain.ErrInvalidInput, p.Name)
	}
	return s.update(ctx, kind, key, func(c *entity.Cart) { c.Add(p, price.EffectivePrice()) })
}

// Subtract resta una unidad; el renglón desaparece al llegar a cero.
func (s *CartService) Subtract(ctx context.Context, kind ports.CartKind, key, productID string) (*entity.Cart, error) {
	return s.update(ctx, kind, key, func(c *entity.Cart) { c.Subtract(productID) })
}

// Remove quita el producto del carrito.
func (s *CartService) Remove(ctx context.Context, kind ports.CartKind, key, productID string) (*entity.Cart, error) {
	return s.update(ctx, kind, key, func(c *entity.Cart) { c.Remove(productID) })
}

// Clear vacía el carrito.
func (s *CartService) Clear(ctx context.Context, kind ports.CartKind, key string) error {
	return s.carts.Clear(ctx, kind, key)
}

func (s *CartService) update(ctx context.Context, kind ports.CartKind, key string, fn func(*entity.Cart)) (*entity.Cart, error) {
	cart, err := s.carts.LoadCart(ctx, kind, key)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := s.carts.SaveCart(ctx, kind, key, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
