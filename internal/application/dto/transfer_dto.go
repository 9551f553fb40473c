package dto

import "time"

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	OriginBranchID      string                `json:"origin_branch_id" validate:"required"`
	DestinationBranchID string                `json:"destination_branch_id" validate:"required"`
	Lines               []TransferLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// TransferLineRequest producto y cantidad a enviar.
type TransferLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// TransferResponse transferencia con sus renglones.
type TransferResponse struct {
	ID                  string                 `json:"id"`
	OriginBranchID      string                 `json:"origin_branch_id"`
	OriginName          string                 `json:"origin_name"`
	DestinationBranchID string                 `json:"destination_branch_id"`
	DestinationName     string                 `json:"destination_name"`
	Status              string                 `json:"status"`
	CreatedBy           string                 `json:"created_by"`
	CreatedAt           time.Time              `json:"created_at"`
	ReceivedBy          string                 `json:"received_by,omitempty"`
	ReceivedAt          *time.Time             `json:"received_at,omitempty"`
	TotalUnits          int                    `json:"total_units"`
	Lines               []TransferLineResponse `json:"lines"`
}

// TransferLineResponse renglón de una transferencia.
type TransferLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
}

// TransferCartResponse contenido del carrito de transferencia.
type TransferCartResponse struct {
	Items      []TransferCartItemResponse `json:"items"`
	TotalUnits int                        `json:"total_units"`
}

// TransferCartItemResponse renglón del carrito de transferencia.
type TransferCartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

// AddTransferCartRequest body para POST /api/transfers/cart/items/:productID.
type AddTransferCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ConfirmTransferCartRequest body para POST /api/transfers/cart/confirm.
type ConfirmTransferCartRequest struct {
	DestinationBranchID string `json:"destination_branch_id" validate:"required"`
}
