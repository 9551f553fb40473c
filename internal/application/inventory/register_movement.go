package inventory

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP a ProcessMovement.
// Las transferencias no se registran por aquí: pasan por el coordinador de transferencias.
func (p *MovementProcessor) RegisterMovementFromRequest(ctx context.Context, actor entity.Actor, in dto.RegisterMovementRequest) (*dto.MovementDTO, error) {
	kind := entity.MovementKind(in.Kind)
	if kind == entity.MovementKindTransfer {
		return nil, domain.ErrInvalidInput
	}
	if !actor.CanManageBranch(in.BranchID) {
		return nil, domain.ErrForbidden
	}
	mov, err := p.ProcessMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		BranchID:  in.BranchID,
		Quantity:  in.Quantity,
		Kind:      kind,
		UserID:    actor.UserID,
		Note:      in.Note,
	})
	if err != nil {
		return nil, err
	}
	out := toMovementDTO(mov)
	return &out, nil
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:            m.ID,
		ProductID:     m.ProductID,
		BranchID:      m.BranchID,
		Kind:          string(m.Kind),
		Delta:         m.Delta,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		UserID:        m.UserID,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}
