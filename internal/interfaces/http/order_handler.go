package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/application/sales"
)

// OrderHandler pedidos web, preventas de mostrador y caja (protegido).
type OrderHandler struct {
	svc *sales.OrderService
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *sales.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func orderNumber(c *fiber.Ctx) (int64, bool) {
	n, err := strconv.ParseInt(c.Params("number"), 10, 64)
	if err != nil || n <= 0 {
		_ = fail(c, fiber.StatusBadRequest, "VALIDATION", "número de pedido inválido")
		return 0, false
	}
	return n, true
}

// Checkout godoc
// @Summary      Confirmar pedido web
// @Description  Crea el pedido y descuenta el stock de la sucursal elegida en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "datos de entrega"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/orders/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if !bind(c, &in) {
		return nil
	}
	o, err := h.svc.PlaceWebOrder(c.Context(), GetActor(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sales.ToOrderResponse(o))
}

// PreSale godoc
// @Summary      Confirmar preventa de mostrador
// @Description  Verifica el stock de todo el ticket; si falta algo informa todos los faltantes y no crea nada.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreSaleRequest  false  "customer"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/orders/presale [post]
func (h *OrderHandler) PreSale(c *fiber.Ctx) error {
	var in dto.PreSaleRequest
	if len(c.Body()) > 0 && !bind(c, &in) {
		return nil
	}
	o, err := h.svc.ConfirmPreSale(c.Context(), GetActor(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sales.ToOrderResponse(o))
}

// CashierQueue godoc
// @Summary      Cola de caja
// @Description  Pedidos de mostrador y web para retirar aún no entregados, del más reciente al más antiguo.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal (por defecto la del usuario)"
// @Success      200  {array}   dto.OrderResponse
// @Router       /api/orders/cashier [get]
func (h *OrderHandler) CashierQueue(c *fiber.Ctx) error {
	list, err := h.svc.ListCashierQueue(c.Context(), GetActor(c), c.Query("branch_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToOrderList(list))
}

// Get godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        number  path  int  true  "Número de pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{number} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	n, ok := orderNumber(c)
	if !ok {
		return nil
	}
	o, err := h.svc.Get(c.Context(), GetActor(c), n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToOrderResponse(o))
}

// Finalize godoc
// @Summary      Cobrar y entregar pedido
// @Description  Descuenta el stock de las ventas de mostrador, registra el pago y deja el pedido ENTREGADO.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        number  path  int                       true  "Número de pedido"
// @Param        body    body  dto.FinalizeOrderRequest  true  "payment_method, fiscal_number"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.StockErrorResponse
// @Router       /api/orders/{number}/finalize [post]
func (h *OrderHandler) Finalize(c *fiber.Ctx) error {
	n, ok := orderNumber(c)
	if !ok {
		return nil
	}
	var in dto.FinalizeOrderRequest
	if !bind(c, &in) {
		return nil
	}
	o, err := h.svc.FinalizeCounterOrder(c.Context(), GetActor(c), n, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToOrderResponse(o))
}

// MarkReady godoc
// @Summary      Marcar pedido preparado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        number  path  int  true  "Número de pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{number}/ready [post]
func (h *OrderHandler) MarkReady(c *fiber.Ctx) error {
	n, ok := orderNumber(c)
	if !ok {
		return nil
	}
	o, err := h.svc.MarkReady(c.Context(), GetActor(c), n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToOrderResponse(o))
}
