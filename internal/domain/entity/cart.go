package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CartItem renglón tipado de un carrito web o de un ticket de mostrador.
// Accumulated siempre es Quantity × UnitPrice.
type CartItem struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Accumulated decimal.Decimal `json:"accumulated"`
}

func (i *CartItem) recompute() {
	i.Accumulated = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart agregado de sesión (carrito web o ticket de mostrador).
// Lo carga, modifica y guarda explícitamente quien lo usa.
type Cart struct {
	Lines map[string]*CartItem `json:"items"`
}

// NewCart construye un carrito vacío.
func NewCart() *Cart {
	return &Cart{Lines: make(map[string]*CartItem)}
}

// Add suma una unidad del producto al precio vigente; el precio unitario del renglón se actualiza.
func (c *Cart) Add(p *Product, price decimal.Decimal) {
	if c.Lines == nil {
		c.Lines = make(map[string]*CartItem)
	}
	item, ok := c.Lines[p.ID]
	if !ok {
		item = &CartItem{ProductID: p.ID, Name: p.Name, SKU: p.SKU}
		c.Lines[p.ID] = item
	}
	item.Quantity++
	item.UnitPrice = price
	item.recompute()
}

// Subtract resta una unidad; si la cantidad llega a cero el renglón se elimina.
// Devuelve false si el producto no estaba en el carrito.
func (c *Cart) Subtract(productID string) bool {
	item, ok := c.Lines[productID]
	if !ok {
		return false
	}
	item.Quantity--
	if item.Quantity <= 0 {
		delete(c.Lines, productID)
		return true
	}
	item.recompute()
	return true
}

// Remove elimina el renglón completo.
func (c *Cart) Remove(productID string) bool {
	if _, ok := c.Lines[productID]; !ok {
		return false
	}
	delete(c.Lines, productID)
	return true
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.Lines = make(map[string]*CartItem)
}

// IsEmpty verdadero si no hay renglones.
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Total suma de los acumulados.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, i := range c.Lines {
		total = total.Add(i.Accumulated)
	}
	return total
}

// Items renglones ordenados por nombre (orden estable para respuestas y pedidos).
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.Lines))
	for _, i := range c.Lines {
		items = append(items, *i)
	}
	sort.Slice(items, func(a, b int) bool {
		if items[a].Name == items[b].Name {
			return items[a].ProductID < items[b].ProductID
		}
		return items[a].Name < items[b].Name
	})
	return items
}
