package entity

import "time"

// MovementKind clasifica la causa de un cambio de stock y determina el signo aplicado.
type MovementKind string

// Tipos de movimiento de stock.
const (
	MovementKindAdjustment MovementKind = "AJU" // ajuste (rotura/pérdida), resta
	MovementKindInbound    MovementKind = "ENT" // entrada (compra/proveedor), suma
	MovementKindSale       MovementKind = "SAL" // salida (venta mostrador/despacho), resta
	MovementKindWebSale    MovementKind = "WEB" // salida (venta online), resta
	MovementKindTransfer   MovementKind = "TRA" // transferencia entre sucursales, signo según Direction
)

// Valid indica si el tipo pertenece a la taxonomía conocida.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementKindAdjustment, MovementKindInbound, MovementKindSale, MovementKindWebSale, MovementKindTransfer:
		return true
	}
	return false
}

// Direction sentido de un movimiento de transferencia.
type Direction string

const (
	DirectionOut Direction = "OUT" // salida de la sucursal origen
	DirectionIn  Direction = "IN"  // entrada en la sucursal destino
)

// StockMovement registro inmutable de un cambio de stock. Nunca se actualiza ni se borra.
type StockMovement struct {
	ID            string
	ProductID     string
	BranchID      string
	Kind          MovementKind
	Delta         int // con signo: positivo entrada, negativo salida
	BalanceBefore int
	BalanceAfter  int
	UserID        string // opcional
	Note          string
	CreatedAt     time.Time
}
