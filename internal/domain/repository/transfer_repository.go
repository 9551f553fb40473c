package repository

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// TransferRepository puerto de persistencia de transferencias y sus renglones.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	CreateLine(ctx context.Context, line *entity.TransferLine) error
	// GetByID devuelve la cabecera con sus renglones, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	// UpdateStatus persiste Status, ReceivedBy y ReceivedAt.
	UpdateStatus(ctx context.Context, t *entity.Transfer) error
	ListIncoming(ctx context.Context, branchID string) ([]*entity.Transfer, error)
	ListOutgoing(ctx context.Context, branchID string) ([]*entity.Transfer, error)
	ListReceived(ctx context.Context, branchID string) ([]*entity.Transfer, error)
}
