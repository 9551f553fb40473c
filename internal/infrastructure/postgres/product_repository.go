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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, slug, sku, barcode, active, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Slug, nullIfEmpty(product.SKU), nullIfEmpty(product.Barcode),
		product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// Update modifica los datos editables del producto; el slug se conserva.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, barcode = $4, active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullIfEmpty(product.SKU), nullIfEmpty(product.Barcode), product.Active, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1::boolean = FALSE OR active)
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, activeOnly, limitOrNil(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SlugExists indica si algún producto usa ya el slug.
func (r *ProductRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// AddPrice marca como no vigentes los precios anteriores e inserta el nuevo como vigente.
// Debe ejecutarse dentro de una transacción para que ambas sentencias vayan juntas.
func (r *ProductRepo) AddPrice(ctx context.Context, price *entity.PriceHistory) error {
	if price.ID == "" {
		price.ID = uuid.New().String()
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE price_history SET is_current = FALSE WHERE product_id = $1 AND is_current`, price.ProductID); err != nil {
		return fmt.Errorf("unset current price: %w", err)
	}
	query := `
		INSERT INTO price_history (id, product_id, sale_price, cost_price, offer_price, started_at, is_current)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)`
	if _, err := r.q.Exec(ctx, query,
		price.ID, price.ProductID, price.SalePrice, price.CostPrice, price.OfferPrice, price.StartedAt,
	); err != nil {
		return fmt.Errorf("insert price: %w", err)
	}
	price.Current = true
	return nil
}

// CurrentPrice devuelve el precio vigente o nil.
func (r *ProductRepo) CurrentPrice(ctx context.Context, productID string) (*entity.PriceHistory, error) {
	query := `
		SELECT id, product_id, sale_price, cost_price, offer_price, started_at, is_current
		FROM price_history WHERE product_id = $1 AND is_current`
	var p entity.PriceHistory
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.ProductID, &p.SalePrice, &p.CostPrice, &p.OfferPrice, &p.StartedAt, &p.Current,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current price: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) findOne(ctx context.Context, query, arg string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var sku, barcode *string
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &sku, &barcode, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.SKU = derefString(sku)
	p.Barcode = derefString(barcode)
	return &p, nil
}
