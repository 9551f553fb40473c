// Package transfer coordina el envío de stock entre sucursales en dos fases:
// al crear la transferencia se debita el origen y queda EN_TRANSITO; al confirmar la
// recepción se acredita el destino y queda COMPLETADO.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
	"github.com/jhoicas/sucursales-api/pkg/logger"
)

// Coordinator casos de uso de transferencias entre sucursales.
type Coordinator struct {
	txRunner  inventory.TxRunner
	processor *inventory.MovementProcessor
	branches  repository.BranchRepository
	products  repository.ProductRepository
	transfers repository.TransferRepository
	carts     ports.CartStore
	remito    RemitoGenerator
	log       *logger.Logger
}

// NewCoordinator construye el coordinador inyectando sus dependencias.
func NewCoordinator(
	txRunner inventory.TxRunner,
	processor *inventory.MovementProcessor,
	branches repository.BranchRepository,
	products repository.ProductRepository,
	transfers repository.TransferRepository,
	carts ports.CartStore,
	remito RemitoGenerator,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		txRunner:  txRunner,
		processor: processor,
		branches:  branches,
		products:  products,
		transfers: transfers,
		carts:     carts,
		remito:    remito,
		log:       log,
	}
}

// LineInput producto y cantidad a transferir.
type LineInput struct {
	ProductID string
	Quantity  int
}

// CreateInput datos de una nueva transferencia.
type CreateInput struct {
	OriginBranchID      string
	DestinationBranchID string
	Lines               []LineInput
}

func (in CreateInput) validate() error {
	if in.OriginBranchID == "" || in.DestinationBranchID == "" || len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	if in.OriginBranchID == in.DestinationBranchID {
		return fmt.Errorf("%w: origen y destino son la misma sucursal", domain.ErrInvalidInput)
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// CreateTransfer crea la transferencia EN_TRANSITO y debita el origen por cada renglón,
// todo en una transacción: si un renglón no tiene stock suficiente no queda nada persistido.
func (c *Coordinator) CreateTransfer(ctx context.Context, actor entity.Actor, in CreateInput) (*entity.Transfer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !actor.CanManageBranch(in.OriginBranchID) {
		return nil, domain.ErrForbidden
	}
	origin, err := c.branch(ctx, in.OriginBranchID)
	if err != nil {
		return nil, err
	}
	destination, err := c.branch(ctx, in.DestinationBranchID)
	if err != nil {
		return nil, err
	}

	t := &entity.Transfer{
		ID:                  uuid.New().String(),
		OriginBranchID:      origin.ID,
		OriginName:          origin.Name,
		DestinationBranchID: destination.ID,
		DestinationName:     destination.Name,
		CreatedBy:           actor.UserID,
		CreatedAt:           time.Now(),
		Status:              entity.TransferInTransit,
	}
	note := fmt.Sprintf("Transferencia %s a %s", t.ID, destination.Name)

	err = c.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Transfers.Create(ctx, t); err != nil {
			return fmt.Errorf("create transfer: %w", err)
		}
		for _, l := range in.Lines {
			product, err := tx.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
			}
			line := entity.TransferLine{
				ID:          uuid.New().String(),
				TransferID:  t.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				SKU:         product.SKU,
				Quantity:    l.Quantity,
			}
			if err := tx.Transfers.CreateLine(ctx, &line); err != nil {
				return fmt.Errorf("create transfer line: %w", err)
			}
			if _, err := c.processor.ProcessInTx(ctx, tx, inventory.MovementInput{
				ProductID: product.ID,
				BranchID:  origin.ID,
				Quantity:  l.Quantity,
				Kind:      entity.MovementKindTransfer,
				Direction: entity.DirectionOut,
				UserID:    actor.UserID,
				Note:      note,
			}); err != nil {
				return err
			}
			t.Lines = append(t.Lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("transfer_id", t.ID).
		Str("origin", origin.ID).
		Str("destination", destination.ID).
		Int("units", t.TotalUnits()).
		Msg("transferencia creada")
	return t, nil
}

// ConfirmReceipt acredita el destino por cada renglón y marca la transferencia COMPLETADO.
// Sólo puede confirmarla un usuario de la sucursal destino, y sólo si está EN_TRANSITO.
// La cabecera se bloquea para que dos confirmaciones simultáneas no acrediten dos veces.
func (c *Coordinator) ConfirmReceipt(ctx context.Context, actor entity.Actor, transferID string) (*entity.Transfer, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Transfer
	err := c.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		t, err := tx.Transfers.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if actor.BranchID == "" || actor.BranchID != t.DestinationBranchID {
			return domain.ErrForbidden
		}
		if t.Status != entity.TransferInTransit {
			return fmt.Errorf("%w: la transferencia está %s", domain.ErrInvalidState, t.Status)
		}
		note := fmt.Sprintf("Recepción de transferencia %s desde %s", t.ID, t.OriginName)
		for _, l := range t.Lines {
			if _, err := c.processor.ProcessInTx(ctx, tx, inventory.MovementInput{
				ProductID: l.ProductID,
				BranchID:  t.DestinationBranchID,
				Quantity:  l.Quantity,
				Kind:      entity.MovementKindTransfer,
				Direction: entity.DirectionIn,
				UserID:    actor.UserID,
				Note:      note,
			}); err != nil {
				return err
			}
		}
		now := time.Now()
		t.Status = entity.TransferCompleted
		t.ReceivedBy = actor.UserID
		t.ReceivedAt = &now
		if err := tx.Transfers.UpdateStatus(ctx, t); err != nil {
			return fmt.Errorf("update transfer: %w", err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("transfer_id", out.ID).
		Str("destination", out.DestinationBranchID).
		Str("received_by", actor.UserID).
		Msg("transferencia recibida")
	return out, nil
}

// Get devuelve una transferencia visible para el actor (de su sucursal origen o destino).
func (c *Coordinator) Get(ctx context.Context, actor entity.Actor, transferID string) (*entity.Transfer, error) {
	t, err := c.transfers.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanManageBranch(t.OriginBranchID) && !actor.CanManageBranch(t.DestinationBranchID) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// ListIncoming transferencias EN_TRANSITO hacia la sucursal (vacío = la del actor).
func (c *Coordinator) ListIncoming(ctx context.Context, actor entity.Actor, branchID string) ([]*entity.Transfer, error) {
	branchID, err := c.scope(actor, branchID)
	if err != nil {
		return nil, err
	}
	return c.transfers.ListIncoming(ctx, branchID)
}

// ListOutgoing transferencias enviadas por la sucursal.
func (c *Coordinator) ListOutgoing(ctx context.Context, actor entity.Actor, branchID string) ([]*entity.Transfer, error) {
	branchID, err := c.scope(actor, branchID)
	if err != nil {
		return nil, err
	}
	return c.transfers.ListOutgoing(ctx, branchID)
}

// ListReceived transferencias ya recibidas por la sucursal.
func (c *Coordinator) ListReceived(ctx context.Context, actor entity.Actor, branchID string) ([]*entity.Transfer, error) {
	branchID, err := c.scope(actor, branchID)
	if err != nil {
		return nil, err
	}
	return c.transfers.ListReceived(ctx, branchID)
}

// Remito genera el PDF del remito de la transferencia.
func (c *Coordinator) Remito(ctx context.Context, actor entity.Actor, transferID string) ([]byte, error) {
	t, err := c.Get(ctx, actor, transferID)
	if err != nil {
		return nil, err
	}
	return c.remito.GenerateRemitoPDF(ctx, t)
}

func (c *Coordinator) scope(actor entity.Actor, branchID string) (string, error) {
	if branchID == "" {
		branchID = actor.BranchID
	}
	if branchID == "" {
		return "", domain.ErrInvalidInput
	}
	if !actor.CanManageBranch(branchID) {
		return "", domain.ErrForbidden
	}
	return branchID, nil
}

func (c *Coordinator) branch(ctx context.Context, id string) (*entity.Branch, error) {
	b, err := c.branches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("sucursal %s: %w", id, domain.ErrNotFound)
	}
	return b, nil
}
