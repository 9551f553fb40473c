package repository

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y su historial de precios (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update modifica nombre, SKU, código de barras y estado activo. El slug no cambia.
	Update(ctx context.Context, product *entity.Product) error
	// List productos ordenados por nombre; limit <= 0 devuelve todos.
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// AddPrice inserta una entrada vigente y marca como no vigentes las anteriores del producto.
	AddPrice(ctx context.Context, price *entity.PriceHistory) error
	// CurrentPrice devuelve la entrada vigente o nil si el producto no tiene precio.
	CurrentPrice(ctx context.Context, productID string) (*entity.PriceHistory, error)
}
