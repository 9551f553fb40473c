package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto; Price opcional crea el primer precio vigente.
type CreateProductRequest struct {
	SKU        string           `json:"sku" validate:"required,min=1,max=100"`
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	Barcode    string           `json:"barcode" validate:"omitempty,max=50"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	CostPrice  *decimal.Decimal `json:"cost_price,omitempty"`
	OfferPrice *decimal.Decimal `json:"offer_price,omitempty"`
}

// SetPriceRequest body para POST /api/products/:id/prices.
type SetPriceRequest struct {
	SalePrice  decimal.Decimal  `json:"sale_price"`
	CostPrice  *decimal.Decimal `json:"cost_price,omitempty"`
	OfferPrice *decimal.Decimal `json:"offer_price,omitempty"`
}

// PriceResponse entrada del historial de precios.
type PriceResponse struct {
	ID             string           `json:"id"`
	SalePrice      decimal.Decimal  `json:"sale_price"`
	CostPrice      *decimal.Decimal `json:"cost_price,omitempty"`
	OfferPrice     *decimal.Decimal `json:"offer_price,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	StartedAt      time.Time        `json:"started_at"`
}

// ProductResponse salida de un producto con su precio vigente (si tiene).
type ProductResponse struct {
	ID           string         `json:"id"`
	SKU          string         `json:"sku"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Barcode      string         `json:"barcode,omitempty"`
	Active       bool           `json:"active"`
	CurrentPrice *PriceResponse `json:"current_price,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// UpdateProductRequest body para PUT /api/products/:id. Sólo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SKU     *string `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Barcode *string `json:"barcode,omitempty" validate:"omitempty,max=50"`
	Active  *bool   `json:"active,omitempty"`
}

// ProductListResponse listado paginado del catálogo.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
