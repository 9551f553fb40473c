package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	ChannelWeb     = "WEB" // tienda online
	ChannelCounter = "MOS" // venta mostrador
)

// Modalidades de entrega.
const (
	ModalityPickup   = "RETIRO"
	ModalityDelivery = "ENVIO"
)

// Estados de un pedido.
const (
	OrderPending   = "PENDIENTE"
	OrderProcessed = "PROCESADO"
	OrderDelivered = "ENTREGADO"
)

// Formas de pago.
const (
	PaymentCash     = "EFECTIVO"
	PaymentDebit    = "DEBITO"
	PaymentCredit   = "CREDITO"
	PaymentTransfer = "TRANSFERENCIA"
)

// DefaultCounterCustomer cliente de las ventas de mostrador sin identificar.
const DefaultCounterCustomer = "Consumidor Final"

// DefaultReplacementOption criterio de reemplazo por defecto.
const DefaultReplacementOption = "No permitir reemplazos"

// ValidPaymentMethod indica si la forma de pago es conocida.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer:
		return true
	}
	return false
}

// Order pedido web o de mostrador.
type Order struct {
	Number            int64
	Customer          string
	Phone             string
	Address           string
	BranchID          string
	Modality          string
	Total             decimal.Decimal
	Status            string
	Channel           string
	PaymentMethod     string
	FiscalNumber      string
	ReplacementOption string
	SellerID          string
	CreatedAt         time.Time
	Items             []OrderItem
}

// OrderItem renglón de un pedido (precio congelado al momento de la venta).
type OrderItem struct {
	ID          string
	OrderNumber int64
	ProductID   string
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
