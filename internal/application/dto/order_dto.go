package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartResponse contenido de un carrito web o de un ticket de mostrador.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CartItemResponse renglón del carrito; Accumulated = Quantity × UnitPrice.
type CartItemResponse struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Accumulated decimal.Decimal `json:"accumulated"`
}

// CheckoutRequest body para POST /api/orders/checkout.
type CheckoutRequest struct {
	Customer          string `json:"customer" validate:"required,max=200"`
	Phone             string `json:"phone" validate:"required,max=50"`
	Address           string `json:"address" validate:"max=255"`
	BranchID          string `json:"branch_id" validate:"required"`
	Modality          string `json:"modality" validate:"required,oneof=RETIRO ENVIO"`
	ReplacementOption string `json:"replacement_option" validate:"max=100"`
}

// PreSaleRequest body para POST /api/orders/presale.
type PreSaleRequest struct {
	Customer string `json:"customer" validate:"max=200"`
}

// FinalizeOrderRequest body para POST /api/orders/:number/finalize.
type FinalizeOrderRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=EFECTIVO DEBITO CREDITO TRANSFERENCIA"`
	FiscalNumber  string `json:"fiscal_number" validate:"max=100"`
}

// OrderResponse pedido con sus renglones.
type OrderResponse struct {
	Number            int64               `json:"number"`
	Customer          string              `json:"customer"`
	Phone             string              `json:"phone,omitempty"`
	Address           string              `json:"address,omitempty"`
	BranchID          string              `json:"branch_id"`
	Modality          string              `json:"modality"`
	Total             decimal.Decimal     `json:"total"`
	Status            string              `json:"status"`
	Channel           string              `json:"channel"`
	PaymentMethod     string              `json:"payment_method,omitempty"`
	FiscalNumber      string              `json:"fiscal_number,omitempty"`
	ReplacementOption string              `json:"replacement_option,omitempty"`
	SellerID          string              `json:"seller_id,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	Items             []OrderItemResponse `json:"items"`
}

// OrderItemResponse renglón de un pedido.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ShortageResponse faltante de stock informado por la preventa.
type ShortageResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}
