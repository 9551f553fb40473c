package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/inventory"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
	"github.com/jhoicas/sucursales-api/pkg/logger"
)

// MovementProcessor es el único punto que modifica saldos de stock.
// Cada movimiento bloquea (o crea) la fila producto+sucursal, valida que el saldo
// no quede negativo, actualiza el saldo y agrega el registro al log, todo en la misma transacción.
type MovementProcessor struct {
	txRunner TxRunner
	branches repository.BranchRepository
	log      *logger.Logger
}

// NewMovementProcessor construye el procesador de movimientos.
func NewMovementProcessor(txRunner TxRunner, branches repository.BranchRepository, log *logger.Logger) *MovementProcessor {
	return &MovementProcessor{txRunner: txRunner, branches: branches, log: log}
}

// MovementInput entrada de un movimiento. Quantity es siempre positiva; el signo lo define Kind
// (y Direction para TRA).
type MovementInput struct {
	ProductID string
	BranchID  string
	Quantity  int
	Kind      entity.MovementKind
	Direction entity.Direction
	UserID    string
	Note      string
}

func (in MovementInput) validate() error {
	if in.ProductID == "" || in.BranchID == "" || in.Quantity <= 0 || !in.Kind.Valid() {
		return domain.ErrInvalidInput
	}
	return nil
}

// ProcessMovement aplica un movimiento en su propia transacción.
func (p *MovementProcessor) ProcessMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	branch, err := p.branches.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}

	var mov *entity.StockMovement
	err = p.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		mov, err = p.ProcessInTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ProcessInTx aplica un movimiento con los repositorios de una transacción del caller
// (transferencias, pedidos). Si devuelve error el caller debe abortar su transacción.
func (p *MovementProcessor) ProcessInTx(ctx context.Context, tx repository.TxRepos, in MovementInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	delta, err := inventory.SignedDelta(in.Kind, in.Direction, in.Quantity)
	if err != nil {
		return nil, err
	}

	product, err := tx.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	// Bloquea la fila (o la crea en 0) hasta el fin de la transacción.
	balance, err := tx.Stock.LockOrInit(ctx, in.ProductID, in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("lock stock: %w", err)
	}

	next, err := inventory.Apply(balance.Quantity, delta)
	if err != nil {
		var insufficient *domain.StockInsufficientError
		if errors.As(err, &insufficient) {
			insufficient.ProductID = product.ID
			insufficient.ProductName = product.Name
			insufficient.BranchID = in.BranchID
			p.log.Warn().
				Str("product_id", in.ProductID).
				Str("branch_id", in.BranchID).
				Str("kind", string(in.Kind)).
				Int("delta", delta).
				Int("balance", balance.Quantity).
				Msg("movimiento rechazado por stock insuficiente")
		}
		return nil, err
	}

	if err := tx.Stock.UpdateQuantity(ctx, in.ProductID, in.BranchID, next); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		BranchID:      in.BranchID,
		Kind:          in.Kind,
		Delta:         delta,
		BalanceBefore: balance.Quantity,
		BalanceAfter:  next,
		UserID:        in.UserID,
		Note:          in.Note,
		CreatedAt:     time.Now(),
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("create movement: %w", err)
	}

	p.log.Debug().
		Str("product_id", in.ProductID).
		Str("branch_id", in.BranchID).
		Str("kind", string(in.Kind)).
		Int("delta", delta).
		Int("balance", next).
		Msg("movimiento aplicado")
	return mov, nil
}
