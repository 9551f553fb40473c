package entity

import "sort"

// TransferCartLine renglón del carrito de transferencia.
type TransferCartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

// TransferCart agregado de sesión con los productos a enviar a otra sucursal.
type TransferCart struct {
	Lines map[string]*TransferCartLine `json:"items"`
}

// NewTransferCart construye un carrito de transferencia vacío.
func NewTransferCart() *TransferCart {
	return &TransferCart{Lines: make(map[string]*TransferCartLine)}
}

// Add suma qty unidades del producto (qty <= 0 se ignora).
func (c *TransferCart) Add(p *Product, qty int) {
	if qty <= 0 {
		return
	}
	if c.Lines == nil {
		c.Lines = make(map[string]*TransferCartLine)
	}
	line, ok := c.Lines[p.ID]
	if !ok {
		line = &TransferCartLine{ProductID: p.ID, Name: p.Name, SKU: p.SKU}
		c.Lines[p.ID] = line
	}
	line.Quantity += qty
}

// Subtract resta una unidad y elimina el renglón al llegar a cero.
func (c *TransferCart) Subtract(productID string) bool {
	line, ok := c.Lines[productID]
	if !ok {
		return false
	}
	line.Quantity--
	if line.Quantity <= 0 {
		delete(c.Lines, productID)
	}
	return true
}

// Remove elimina el renglón completo.
func (c *TransferCart) Remove(productID string) bool {
	if _, ok := c.Lines[productID]; !ok {
		return false
	}
	delete(c.Lines, productID)
	return true
}

// Clear vacía el carrito.
func (c *TransferCart) Clear() {
	c.Lines = make(map[string]*TransferCartLine)
}

// IsEmpty verdadero si no hay renglones.
func (c *TransferCart) IsEmpty() bool { return len(c.Lines) == 0 }

// Items renglones ordenados por nombre.
func (c *TransferCart) Items() []TransferCartLine {
	items := make([]TransferCartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, *l)
	}
	sort.Slice(items, func(a, b int) bool {
		if items[a].Name == items[b].Name {
			return items[a].ProductID < items[b].ProductID
		}
		return items[a].Name < items[b].Name
	})
	return items
}
