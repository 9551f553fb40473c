package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
	"github.com/jhoicas/sucursales-api/pkg/slug"
)

// maxSlugAttempts límite de sufijos probados antes de recurrir a uno aleatorio.
const maxSlugAttempts = 50

// ProductUseCase catálogo de productos e historial de precios. El stock se maneja vía movimientos.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto con slug único y, si viene Price, su primer precio vigente.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price, in.CostPrice, in.OfferPrice); err != nil {
			return nil, err
		}
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		SKU:       sku,
		Barcode:   in.Barcode,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var price *entity.PriceHistory
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		s, err := uniqueSlug(ctx, tx.Products, name)
		if err != nil {
			return err
		}
		product.Slug = s
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.Price == nil {
			return nil
		}
		price = &entity.PriceHistory{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			SalePrice:  *in.Price,
			CostPrice:  in.CostPrice,
			OfferPrice: in.OfferPrice,
			StartedAt:  now,
		}
		return tx.Products.AddPrice(ctx, price)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, price), nil
}

// GetByID obtiene un producto con su precio vigente.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	price, err := uc.repo.CurrentPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, price), nil
}

// Update aplica los campos presentes del request. El slug no cambia aunque cambie el nombre.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = sku
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	price, err := uc.repo.CurrentPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, price), nil
}

// Deactivate da de baja el producto. No se borra: movimientos, transferencias y pedidos lo referencian.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !product.Active {
		return nil
	}
	product.Active = false
	product.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, product)
}

// List catálogo paginado, con el precio vigente de cada producto.
func (uc *ProductUseCase) List(ctx context.Context, activeOnly bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(ctx, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		price, err := uc.repo.CurrentPrice(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *toProductResponse(p, price))
	}
	return out, nil
}

// SetPrice registra un nuevo precio vigente; los anteriores dejan de serlo en la misma transacción.
func (uc *ProductUseCase) SetPrice(ctx context.Context, productID string, in dto.SetPriceRequest) (*dto.PriceResponse, error) {
	if err := validatePrice(in.SalePrice, in.CostPrice, in.OfferPrice); err != nil {
		return nil, err
	}
	price := &entity.PriceHistory{
		ID:         uuid.New().String(),
		ProductID:  productID,
		SalePrice:  in.SalePrice,
		CostPrice:  in.CostPrice,
		OfferPrice: in.OfferPrice,
		StartedAt:  time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		p, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return tx.Products.AddPrice(ctx, price)
	})
	if err != nil {
		return nil, err
	}
	return toPriceResponse(price), nil
}

// CurrentPrice precio a cobrar hoy (oferta si corresponde); cero si el producto no tiene precio.
func (uc *ProductUseCase) CurrentPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	price, err := uc.repo.CurrentPrice(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if price == nil {
		return decimal.Zero, nil
	}
	return price.EffectivePrice(), nil
}

func validatePrice(sale decimal.Decimal, cost, offer *decimal.Decimal) error {
	if !sale.IsPositive() {
		return fmt.Errorf("%w: el precio de venta debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if cost != nil && cost.IsNegative() {
		return domain.ErrInvalidInput
	}
	if offer != nil && offer.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// uniqueSlug deriva el slug del nombre y agrega -2, -3... si ya existe.
func uniqueSlug(ctx context.Context, repo repository.ProductRepository, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "producto"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		exists, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return base + "-" + uuid.New().String()[:8], nil
}

func toPriceResponse(p *entity.PriceHistory) *dto.PriceResponse {
	if p == nil {
		return nil
	}
	return &dto.PriceResponse{
		ID:             p.ID,
		SalePrice:      p.SalePrice,
		CostPrice:      p.CostPrice,
		OfferPrice:     p.OfferPrice,
		EffectivePrice: p.EffectivePrice(),
		StartedAt:      p.StartedAt,
	}
}

func toProductResponse(p *entity.Product, price *entity.PriceHistory) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Slug:         p.Slug,
		Barcode:      p.Barcode,
		Active:       p.Active,
		CurrentPrice: toPriceResponse(price),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
