package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity es la magnitud; el signo lo define Kind.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	BranchID  string `json:"branch_id" validate:"required"`
	Kind      string `json:"kind" validate:"required,oneof=AJU ENT SAL WEB"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note,omitempty" validate:"max=255"`
}

// MovementDTO registro del log de movimientos.
type MovementDTO struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	BranchID      string    `json:"branch_id"`
	Kind          string    `json:"kind"`
	Delta         int       `json:"delta"`
	BalanceBefore int       `json:"balance_before"`
	BalanceAfter  int       `json:"balance_after"`
	UserID        string    `json:"user_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockBalanceDTO saldo de un producto en una sucursal.
type StockBalanceDTO struct {
	ProductID        string `json:"product_id"`
	BranchID         string `json:"branch_id"`
	Quantity         int    `json:"quantity"`
	MinimumThreshold int    `json:"minimum_threshold"`
	Location         string `json:"location"`
	BelowMinimum     bool   `json:"below_minimum"`
}

// LowStockDTO producto en o por debajo de su umbral mínimo.
type LowStockDTO struct {
	StockBalanceDTO
	ProductName string `json:"product_name,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Missing     int    `json:"missing"` // unidades para volver al umbral
}

// SufficiencyDTO respuesta de GET /api/inventory/sufficient.
type SufficiencyDTO struct {
	ProductID  string `json:"product_id"`
	BranchID   string `json:"branch_id"`
	Requested  int    `json:"requested"`
	Available  int    `json:"available"`
	Sufficient bool   `json:"sufficient"`
}

// UpdateStockSettingsRequest body para PUT /api/inventory/settings.
type UpdateStockSettingsRequest struct {
	ProductID        string `json:"product_id" validate:"required"`
	BranchID         string `json:"branch_id" validate:"required"`
	MinimumThreshold int    `json:"minimum_threshold" validate:"min=0"`
	Location         string `json:"location" validate:"required,location"`
}

// BranchStockDTO saldo de un producto en una sucursal, por nombre de sucursal.
type BranchStockDTO struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Quantity   int    `json:"quantity"`
	Location   string `json:"location"`
}

// ProductStockDTO respuesta de GET /api/inventory/products/:id: una entrada por sucursal.
type ProductStockDTO struct {
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	Total       int              `json:"total"`
	Branches    []BranchStockDTO `json:"branches"`
}
