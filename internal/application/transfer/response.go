package transfer

import (
	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// ToTransferResponse convierte la entidad al DTO de respuesta.
func ToTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	out := &dto.TransferResponse{
		ID:                  t.ID,
		OriginBranchID:      t.OriginBranchID,
		OriginName:          t.OriginName,
		DestinationBranchID: t.DestinationBranchID,
		DestinationName:     t.DestinationName,
		Status:              string(t.Status),
		CreatedBy:           t.CreatedBy,
		CreatedAt:           t.CreatedAt,
		ReceivedBy:          t.ReceivedBy,
		ReceivedAt:          t.ReceivedAt,
		TotalUnits:          t.TotalUnits(),
		Lines:               make([]dto.TransferLineResponse, 0, len(t.Lines)),
	}
	for _, l := range t.Lines {
		out.Lines = append(out.Lines, dto.TransferLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			SKU:         l.SKU,
			Quantity:    l.Quantity,
		})
	}
	return out
}

// ToTransferList convierte una lista de transferencias.
func ToTransferList(list []*entity.Transfer) []*dto.TransferResponse {
	out := make([]*dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransferResponse(t))
	}
	return out
}

// ToTransferCartResponse convierte el carrito de transferencia al DTO.
func ToTransferCartResponse(cart *entity.TransferCart) *dto.TransferCartResponse {
	out := &dto.TransferCartResponse{Items: []dto.TransferCartItemResponse{}}
	for _, it := range cart.Items() {
		out.Items = append(out.Items, dto.TransferCartItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Quantity:  it.Quantity,
		})
		out.TotalUnits += it.Quantity
	}
	return out
}
