package entity

import "time"

// Ubicaciones (sector/pasillo) posibles de un stock dentro de la sucursal.
const (
	LocationAlmacen    = "ALM"
	LocationBebidas    = "BEB"
	LocationDeposito   = "DEP"
	LocationFrescos    = "FRE"
	LocationLimpieza   = "LIM"
	LocationPerfumeria = "PER"
)

// DefaultMinimumThreshold umbral de alerta por defecto para un stock recién creado.
const DefaultMinimumThreshold = 5

// StockBalance es el saldo (cantidad disponible) de un producto en una sucursal.
// Es un acumulado de los StockMovement del par; sólo el procesador de movimientos lo modifica.
type StockBalance struct {
	ProductID        string
	BranchID         string
	Quantity         int
	MinimumThreshold int // sólo informativo
	Location         string
	UpdatedAt        time.Time
}

// NewStockBalance construye el saldo por defecto de un par (producto, sucursal) sin registro previo.
func NewStockBalance(productID, branchID string) *StockBalance {
	return &StockBalance{
		ProductID:        productID,
		BranchID:         branchID,
		Quantity:         0,
		MinimumThreshold: DefaultMinimumThreshold,
		Location:         LocationAlmacen,
	}
}

// BelowMinimum indica si el saldo llegó al umbral de alerta.
func (s *StockBalance) BelowMinimum() bool {
	return s.Quantity <= s.MinimumThreshold
}

// ValidLocation verifica que la ubicación sea una de las conocidas.
func ValidLocation(loc string) bool {
	switch loc {
	case LocationAlmacen, LocationBebidas, LocationDeposito, LocationFrescos, LocationLimpieza, LocationPerfumeria:
		return true
	}
	return false
}
