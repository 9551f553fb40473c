package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo; el stock se lleva por sucursal en StockBalance.
type Product struct {
	ID        string
	Name      string
	Slug      string
	SKU       string
	Barcode   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceHistory una entrada del historial de precios de un producto.
// Sólo una entrada por producto tiene Current = true.
type PriceHistory struct {
	ID         string
	ProductID  string
	SalePrice  decimal.Decimal
	CostPrice  *decimal.Decimal
	OfferPrice *decimal.Decimal
	StartedAt  time.Time
	Current    bool
}

// EffectivePrice precio de venta a cobrar: la oferta si existe y es menor al precio de venta.
func (p *PriceHistory) EffectivePrice() decimal.Decimal {
	if p.OfferPrice != nil && p.OfferPrice.GreaterThan(decimal.Zero) && p.OfferPrice.LessThan(p.SalePrice) {
		return *p.OfferPrice
	}
	return p.SalePrice
}
