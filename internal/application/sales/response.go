package sales

import (
	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// ToCartResponse convierte el agregado de sesión al DTO.
func ToCartResponse(c *entity.Cart) *dto.CartResponse {
	out := &dto.CartResponse{Items: []dto.CartItemResponse{}, Total: c.Total()}
	for _, it := range c.Items() {
		out.Items = append(out.Items, dto.CartItemResponse{
			ProductID:   it.ProductID,
			Name:        it.Name,
			SKU:         it.SKU,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Accumulated: it.Accumulated,
		})
	}
	return out
}

// ToOrderResponse convierte un pedido al DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		Number:            o.Number,
		Customer:          o.Customer,
		Phone:             o.Phone,
		Address:           o.Address,
		BranchID:          o.BranchID,
		Modality:          o.Modality,
		Total:             o.Total,
		Status:            o.Status,
		Channel:           o.Channel,
		PaymentMethod:     o.PaymentMethod,
		FiscalNumber:      o.FiscalNumber,
		ReplacementOption: o.ReplacementOption,
		SellerID:          o.SellerID,
		CreatedAt:         o.CreatedAt,
		Items:             make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

// ToOrderList convierte una lista de pedidos.
func ToOrderList(list []*entity.Order) []*dto.OrderResponse {
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToOrderResponse(o))
	}
	return out
}

// ToShortageList convierte los faltantes de una preventa.
func ToShortageList(items []domain.Shortage) []dto.ShortageResponse {
	out := make([]dto.ShortageResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.ShortageResponse{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Requested:   s.Requested,
			Available:   s.Available,
		})
	}
	return out
}
