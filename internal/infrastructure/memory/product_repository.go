package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo e historial de precios en memoria.
type ProductRepo struct {
	store *Store
	inTx  bool
}

// NewProductRepository repositorio fuera de transacción.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		for _, cur := range d.products {
			if cur.ID == p.ID || cur.Slug == p.Slug || (p.SKU != "" && cur.SKU == p.SKU) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.products[p.ID] = *p
	})
	return err
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.store.view(r.inTx, func(d *state) {
		if p, ok := d.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.store.view(r.inTx, func(d *state) {
		for _, p := range d.products {
			if p.SKU == sku {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		cur, ok := d.products[p.ID]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		for _, other := range d.products {
			if other.ID != p.ID && p.SKU != "" && other.SKU == p.SKU {
				err = domain.ErrDuplicate
				return
			}
		}
		cur.Name = p.Name
		cur.SKU = p.SKU
		cur.Barcode = p.Barcode
		cur.Active = p.Active
		cur.UpdatedAt = p.UpdatedAt
		d.products[p.ID] = cur
	})
	return err
}

func (r *ProductRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	r.store.view(r.inTx, func(d *state) {
		for _, p := range d.products {
			if activeOnly && !p.Active {
				continue
			}
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProductRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	var found bool
	r.store.view(r.inTx, func(d *state) {
		for _, p := range d.products {
			if p.Slug == slug {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r *ProductRepo) AddPrice(_ context.Context, price *entity.PriceHistory) error {
	var err error
	r.store.view(r.inTx, func(d *state) {
		if _, ok := d.products[price.ProductID]; !ok {
			err = domain.ErrNotFound
			return
		}
		for i := range d.prices {
			if d.prices[i].ProductID == price.ProductID {
				d.prices[i].Current = false
			}
		}
		price.Current = true
		d.prices = append(d.prices, *price)
	})
	return err
}

func (r *ProductRepo) CurrentPrice(_ context.Context, productID string) (*entity.PriceHistory, error) {
	var out *entity.PriceHistory
	r.store.view(r.inTx, func(d *state) {
		for _, p := range d.prices {
			if p.ProductID == productID && p.Current {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}
