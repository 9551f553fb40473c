package inventory

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

// BalanceQuery lecturas de saldo (sin bloqueo ni creación de filas) y ajustes de
// los campos informativos de una fila de stock.
type BalanceQuery struct {
	txRunner  TxRunner
	stock     repository.StockRepository
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	branches  repository.BranchRepository
}

// NewBalanceQuery construye el caso de uso de consultas de stock.
func NewBalanceQuery(
	txRunner TxRunner,
	stock repository.StockRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	branches repository.BranchRepository,
) *BalanceQuery {
	return &BalanceQuery{
		txRunner:  txRunner,
		stock:     stock,
		movements: movements,
		products:  products,
		branches:  branches,
	}
}

// GetBalance devuelve el saldo actual; 0 si nunca hubo movimientos para el par.
func (q *BalanceQuery) GetBalance(ctx context.Context, productID, branchID string) (int, error) {
	if productID == "" || branchID == "" {
		return 0, domain.ErrInvalidInput
	}
	s, err := q.stock.Get(ctx, productID, branchID)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, nil
	}
	return s.Quantity, nil
}

// HasSufficient indica si el saldo actual cubre quantity. Es sólo informativo:
// otro movimiento puede cambiar el saldo antes de que se aplique la operación real.
func (q *BalanceQuery) HasSufficient(ctx context.Context, productID, branchID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, domain.ErrInvalidInput
	}
	current, err := q.GetBalance(ctx, productID, branchID)
	if err != nil {
		return false, err
	}
	return current >= quantity, nil
}

// GetStock devuelve la fila completa; si no existe, los valores por defecto (sin crearla).
func (q *BalanceQuery) GetStock(ctx context.Context, productID, branchID string) (*dto.StockBalanceDTO, error) {
	if productID == "" || branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := q.stock.Get(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = entity.NewStockBalance(productID, branchID)
	}
	out := toStockDTO(s)
	return &out, nil
}

// ListByProduct saldo del producto en cada sucursal; las que nunca lo movieron figuran con 0.
func (q *BalanceQuery) ListByProduct(ctx context.Context, productID string) (*dto.ProductStockDTO, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := q.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	branches, err := q.branches.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.stock.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	byBranch := make(map[string]*entity.StockBalance, len(rows))
	for _, s := range rows {
		byBranch[s.BranchID] = s
	}
	out := &dto.ProductStockDTO{
		ProductID:   product.ID,
		ProductName: product.Name,
		Branches:    make([]dto.BranchStockDTO, 0, len(branches)),
	}
	for _, b := range branches {
		s, ok := byBranch[b.ID]
		if !ok {
			s = entity.NewStockBalance(productID, b.ID)
		}
		out.Branches = append(out.Branches, dto.BranchStockDTO{
			BranchID:   b.ID,
			BranchName: b.Name,
			Quantity:   s.Quantity,
			Location:   s.Location,
		})
		out.Total += s.Quantity
	}
	return out, nil
}

// ListLowStock productos de la sucursal con saldo en o por debajo de su umbral mínimo,
// con la cantidad sugerida para volver al umbral.
func (q *BalanceQuery) ListLowStock(ctx context.Context, branchID string) ([]dto.LowStockDTO, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := q.stock.ListLowStock(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, s := range rows {
		item := dto.LowStockDTO{
			StockBalanceDTO: toStockDTO(s),
			Missing:         s.MinimumThreshold - s.Quantity,
		}
		if p, err := q.products.GetByID(ctx, s.ProductID); err == nil && p != nil {
			item.ProductName = p.Name
			item.SKU = p.SKU
		}
		out = append(out, item)
	}
	return out, nil
}

// ListMovements lee el log de movimientos, del más reciente al más antiguo.
// Con productID filtra por producto (y opcionalmente sucursal); si no, por sucursal.
func (q *BalanceQuery) ListMovements(ctx context.Context, productID, branchID string, page dto.PageRequest) ([]dto.MovementDTO, error) {
	page.DefaultPage()
	var (
		list []*entity.StockMovement
		err  error
	)
	switch {
	case productID != "":
		list, err = q.movements.ListByProduct(ctx, productID, branchID, page.Limit, page.Offset)
	case branchID != "":
		list, err = q.movements.ListByBranch(ctx, branchID, page.Limit, page.Offset)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementDTO(m))
	}
	return out, nil
}

// UpdateSettings cambia umbral mínimo y ubicación de la fila (creándola en 0 si no existe).
// Nunca modifica la cantidad.
func (q *BalanceQuery) UpdateSettings(ctx context.Context, actor entity.Actor, in dto.UpdateStockSettingsRequest) (*dto.StockBalanceDTO, error) {
	if in.ProductID == "" || in.BranchID == "" || in.MinimumThreshold < 0 || !entity.ValidLocation(in.Location) {
		return nil, domain.ErrInvalidInput
	}
	if !actor.CanManageBranch(in.BranchID) {
		return nil, domain.ErrForbidden
	}
	var out dto.StockBalanceDTO
	err := q.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		p, err := tx.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		s, err := tx.Stock.LockOrInit(ctx, in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if err := tx.Stock.UpdateSettings(ctx, in.ProductID, in.BranchID, in.MinimumThreshold, in.Location); err != nil {
			return err
		}
		s.MinimumThreshold = in.MinimumThreshold
		s.Location = in.Location
		out = toStockDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func toStockDTO(s *entity.StockBalance) dto.StockBalanceDTO {
	return dto.StockBalanceDTO{
		ProductID:        s.ProductID,
		BranchID:         s.BranchID,
		Quantity:         s.Quantity,
		MinimumThreshold: s.MinimumThreshold,
		Location:         s.Location,
		BelowMinimum:     s.BelowMinimum(),
	}
}
