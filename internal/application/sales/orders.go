package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
	"github.com/jhoicas/sucursales-api/pkg/logger"
)

// OrderService checkout web, preventa de mostrador y cobro en caja.
type OrderService struct {
	txRunner  inventory.TxRunner
	processor *inventory.MovementProcessor
	balances  *inventory.BalanceQuery
	branches  repository.BranchRepository
	orders    repository.OrderRepository
	carts     ports.CartStore
	log       *logger.Logger
}

// NewOrderService construye el servicio de pedidos.
func NewOrderService(
	txRunner inventory.TxRunner,
	processor *inventory.MovementProcessor,
	balances *inventory.BalanceQuery,
	branches repository.BranchRepository,
	orders repository.OrderRepository,
	carts ports.CartStore,
	log *logger.Logger,
) *OrderService {
	return &OrderService{
		txRunner:  txRunner,
		processor: processor,
		balances:  balances,
		branches:  branches,
		orders:    orders,
		carts:     carts,
		log:       log,
	}
}

// PlaceWebOrder crea el pedido WEB con el contenido del carrito y descuenta el stock de la
// sucursal elegida (movimiento WEB por renglón) en una sola transacción.
// Si algún producto no alcanza no se crea nada; el carrito se vacía sólo tras el commit.
func (s *OrderService) PlaceWebOrder(ctx context.Context, actor entity.Actor, sessionKey string, in dto.CheckoutRequest) (*entity.Order, error) {
	if in.Modality != entity.ModalityPickup && in.Modality != entity.ModalityDelivery {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Customer) == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	cart, err := s.carts.LoadCart(ctx, ports.CartKindWeb, sessionKey)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if err := s.ensureBranch(ctx, in.BranchID); err != nil {
		return nil, err
	}

	address := in.Address
	if in.Modality == entity.ModalityPickup && address == "" {
		address = "RETIRO EN LOCAL"
	}
	replacement := in.ReplacementOption
	if replacement == "" {
		replacement = entity.DefaultReplacementOption
	}
	order := &entity.Order{
		Customer:          strings.TrimSpace(in.Customer),
		Phone:             in.Phone,
		Address:           address,
		BranchID:          in.BranchID,
		Modality:          in.Modality,
		Total:             cart.Total(),
		Status:            entity.OrderPending,
		Channel:           entity.ChannelWeb,
		ReplacementOption: replacement,
		SellerID:          actor.UserID,
		CreatedAt:         time.Now(),
	}

	err = s.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		items, err := s.createItems(ctx, tx, order, cart)
		if err != nil {
			return err
		}
		for _, it := range items {
			if _, err := s.processor.ProcessInTx(ctx, tx, inventory.MovementInput{
				ProductID: it.ProductID,
				BranchID:  order.BranchID,
				Quantity:  it.Quantity,
				Kind:      entity.MovementKindWebSale,
				UserID:    actor.UserID,
				Note:      fmt.Sprintf("Venta Web - Pedido #%d", order.Number),
			}); err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.clearCart(ctx, ports.CartKindWeb, sessionKey, order.Number)
	s.log.Info().Int64("order", order.Number).Str("branch_id", order.BranchID).
		Str("total", order.Total.String()).Msg("pedido web creado")
	return order, nil
}

// ConfirmPreSale crea el pedido de mostrador (MOS, RETIRO, PENDIENTE) con el ticket del vendedor.
// Antes verifica el stock de cada renglón; si falta alguno devuelve *domain.ShortageError con
// todos los faltantes y no crea nada. El stock se descuenta recién al cobrar en caja.
func (s *OrderService) ConfirmPreSale(ctx context.Context, actor entity.Actor, sessionKey string, in dto.PreSaleRequest) (*entity.Order, error) {
	if actor.BranchID == "" {
		return nil, domain.ErrForbidden
	}
	ticket, err := s.carts.LoadCart(ctx, ports.CartKindTicket, sessionKey)
	if err != nil {
		return nil, err
	}
	if ticket.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	var shortages []domain.Shortage
	for _, it := range ticket.Items() {
		ok, err := s.balances.HasSufficient(ctx, it.ProductID, actor.BranchID, it.Quantity)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}
		available, err := s.balances.GetBalance(ctx, it.ProductID, actor.BranchID)
		if err != nil {
			return nil, err
		}
		shortages = append(shortages, domain.Shortage{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			Requested:   it.Quantity,
			Available:   available,
		})
	}
	if len(shortages) > 0 {
		return nil, &domain.ShortageError{Items: shortages}
	}

	customer := strings.TrimSpace(in.Customer)
	if customer == "" {
		customer = entity.DefaultCounterCustomer
	}
	order := &entity.Order{
		Customer:          customer,
		BranchID:          actor.BranchID,
		Modality:          entity.ModalityPickup,
		Total:             ticket.Total(),
		Status:            entity.OrderPending,
		Channel:           entity.ChannelCounter,
		ReplacementOption: entity.DefaultReplacementOption,
		SellerID:          actor.UserID,
		CreatedAt:         time.Now(),
	}
	err = s.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		items, err := s.createItems(ctx, tx, order, ticket)
		if err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.clearCart(ctx, ports.CartKindTicket, sessionKey, order.Number)
	s.log.Info().Int64("order", order.Number).Str("branch_id", order.BranchID).Msg("preventa confirmada")
	return order, nil
}

// FinalizeCounterOrder cobra un pedido en caja: registra forma de pago y número fiscal y lo pasa
// a ENTREGADO. Para pedidos de mostrador descuenta el stock (SAL por renglón) en la misma
// transacción; los pedidos web ya lo descontaron al confirmarse.
func (s *OrderService) FinalizeCounterOrder(ctx context.Context, actor entity.Actor, number int64, in dto.FinalizeOrderRequest) (*entity.Order, error) {
	if !isCashier(actor) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Order
	err := s.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		order, err := tx.Orders.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !actor.CanManageBranch(order.BranchID) {
			return domain.ErrForbidden
		}
		if order.Status == entity.OrderDelivered {
			return fmt.Errorf("%w: el pedido #%d ya fue entregado", domain.ErrInvalidState, number)
		}
		if order.Channel == entity.ChannelCounter {
			for _, it := range order.Items {
				if _, err := s.processor.ProcessInTx(ctx, tx, inventory.MovementInput{
					ProductID: it.ProductID,
					BranchID:  order.BranchID,
					Quantity:  it.Quantity,
					Kind:      entity.MovementKindSale,
					UserID:    actor.UserID,
					Note:      fmt.Sprintf("Venta Mostrador #%d", order.Number),
				}); err != nil {
					return err
				}
			}
		}
		order.PaymentMethod = in.PaymentMethod
		order.FiscalNumber = in.FiscalNumber
		order.Status = entity.OrderDelivered
		if err := tx.Orders.Update(ctx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		out = order
		return nil
	})
	if err != nil {
		var insufficient *domain.StockInsufficientError
		if errors.As(err, &insufficient) {
			s.log.Warn().Int64("order", number).Err(err).Msg("no se pudo cobrar el pedido")
		}
		return nil, err
	}
	s.log.Info().Int64("order", out.Number).Str("payment", out.PaymentMethod).Msg("pedido cobrado")
	return out, nil
}

// MarkReady pasa un pedido PENDIENTE a PROCESADO (armado, listo para retirar o enviar).
func (s *OrderService) MarkReady(ctx context.Context, actor entity.Actor, number int64) (*entity.Order, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	var out *entity.Order
	err := s.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		order, err := tx.Orders.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !actor.CanManageBranch(order.BranchID) {
			return domain.ErrForbidden
		}
		if order.Status != entity.OrderPending {
			return fmt.Errorf("%w: el pedido #%d está %s", domain.ErrInvalidState, number, order.Status)
		}
		order.Status = entity.OrderProcessed
		if err := tx.Orders.Update(ctx, order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCashierQueue pedidos por cobrar/entregar en la sucursal (vacío = la del actor).
func (s *OrderService) ListCashierQueue(ctx context.Context, actor entity.Actor, branchID string) ([]*entity.Order, error) {
	if branchID == "" {
		branchID = actor.BranchID
	}
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !isCashier(actor) || !actor.CanManageBranch(branchID) {
		return nil, domain.ErrForbidden
	}
	return s.orders.ListCashierQueue(ctx, branchID)
}

// Get devuelve un pedido visible para el actor.
func (s *OrderService) Get(ctx context.Context, actor entity.Actor, number int64) (*entity.Order, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanManageBranch(order.BranchID) && order.SellerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) createItems(ctx context.Context, tx repository.TxRepos, order *entity.Order, cart *entity.Cart) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(cart.Lines))
	for _, it := range cart.Items() {
		item := entity.OrderItem{
			ID:          uuid.New().String(),
			OrderNumber: order.Number,
			ProductID:   it.ProductID,
			ProductName: it.Name,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		}
		if err := tx.Orders.CreateItem(ctx, &item); err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *OrderService) ensureBranch(ctx context.Context, id string) error {
	b, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("sucursal %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *OrderService) clearCart(ctx context.Context, kind ports.CartKind, key string, number int64) {
	if err := s.carts.Clear(ctx, kind, key); err != nil {
		s.log.Warn().Err(err).Int64("order", number).Str("cart", string(kind)).Msg("no se pudo vaciar el carrito")
	}
}

func isCashier(actor entity.Actor) bool {
	switch actor.Role {
	case entity.RoleSuperAdmin, entity.RoleBranchAdmin, entity.RoleCashier:
		return true
	}
	return false
}
