// Package memory implementa los puertos de repositorio en memoria.
// Lo usan los tests (y CartStore cuando no hay Redis); Store serializa todas las
// transacciones con un único mutex y descarta los cambios si la transacción falla.
package memory

import (
	"sync"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

type stockKey struct {
	productID string
	branchID  string
}

type state struct {
	branches  map[string]entity.Branch
	users     map[string]entity.User
	products  map[string]entity.Product
	prices    []entity.PriceHistory
	stock     map[stockKey]entity.StockBalance
	movements []entity.StockMovement
	transfers map[string]entity.Transfer
	orders    map[int64]entity.Order
	nextOrder int64
}

func newState() *state {
	return &state{
		branches:  map[string]entity.Branch{},
		users:     map[string]entity.User{},
		products:  map[string]entity.Product{},
		stock:     map[stockKey]entity.StockBalance{},
		transfers: map[string]entity.Transfer{},
		orders:    map[int64]entity.Order{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.transfers {
		v.Lines = append([]entity.TransferLine(nil), v.Lines...)
		c.transfers[k] = v
	}
	for k, v := range s.orders {
		v.Items = append([]entity.OrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	c.prices = append([]entity.PriceHistory(nil), s.prices...)
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	c.nextOrder = s.nextOrder
	return c
}

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// view ejecuta fn sobre los datos; toma el lock salvo que ya lo tenga la transacción en curso.
func (s *Store) view(inTx bool, fn func(d *state)) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn(s.data)
}
