package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/application/transfer"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// TransferHandler transferencias entre sucursales y su carrito (protegido, sólo personal).
type TransferHandler struct {
	coord *transfer.Coordinator
}

// NewTransferHandler construye el handler.
func NewTransferHandler(coord *transfer.Coordinator) *TransferHandler {
	return &TransferHandler{coord: coord}
}

// Create godoc
// @Summary      Crear transferencia
// @Description  Debita el origen en una sola transacción; queda EN_TRANSITO.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "origen, destino y renglones"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if !bind(c, &in) {
		return nil
	}
	lines := make([]transfer.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, transfer.LineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	t, err := h.coord.CreateTransfer(c.Context(), GetActor(c), transfer.CreateInput{
		OriginBranchID:      in.OriginBranchID,
		DestinationBranchID: in.DestinationBranchID,
		Lines:               lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transfer.ToTransferResponse(t))
}

// Get godoc
// @Summary      Obtener transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	t, err := h.coord.Get(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.ToTransferResponse(t))
}

// Receive godoc
// @Summary      Confirmar recepción
// @Description  Sólo un usuario de la sucursal destino; acredita el destino y queda COMPLETADO.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	t, err := h.coord.ConfirmReceipt(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.ToTransferResponse(t))
}

// Remito godoc
// @Summary      Remito en PDF
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/remito [get]
func (h *TransferHandler) Remito(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.coord.Remito(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="remito-`+id+`.pdf"`)
	return c.Send(pdf)
}

// ListIncoming godoc
// @Summary      Transferencias en tránsito hacia la sucursal
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal (por defecto la del usuario)"
// @Success      200  {array}   dto.TransferResponse
// @Router       /api/transfers/incoming [get]
func (h *TransferHandler) ListIncoming(c *fiber.Ctx) error {
	return h.list(c, h.coord.ListIncoming)
}

// ListOutgoing godoc
// @Summary      Transferencias enviadas por la sucursal
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal (por defecto la del usuario)"
// @Success      200  {array}   dto.TransferResponse
// @Router       /api/transfers/outgoing [get]
func (h *TransferHandler) ListOutgoing(c *fiber.Ctx) error {
	return h.list(c, h.coord.ListOutgoing)
}

// ListReceived godoc
// @Summary      Transferencias recibidas por la sucursal
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal (por defecto la del usuario)"
// @Success      200  {array}   dto.TransferResponse
// @Router       /api/transfers/received [get]
func (h *TransferHandler) ListReceived(c *fiber.Ctx) error {
	return h.list(c, h.coord.ListReceived)
}

type transferLister func(ctx context.Context, actor entity.Actor, branchID string) ([]*entity.Transfer, error)

func (h *TransferHandler) list(c *fiber.Ctx, fn transferLister) error {
	list, err := fn(c.Context(), GetActor(c), c.Query("branch_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.ToTransferList(list))
}

// GetCart godoc
// @Summary      Carrito de transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransferCartResponse
// @Router       /api/transfers/cart [get]
func (h *TransferHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.coord.GetCart(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.ToTransferCartResponse(cart))
}

// AddToCart godoc
// @Summary      Agregar producto al carrito de transferencia
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productID  path  string                      true  "Producto"
// @Param        body       body  dto.AddTransferCartRequest  true  "quantity"
// @Success      200  {object}  dto.TransferCartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/cart/items/{productID} [post]
func (h *TransferHandler) AddToCart(c *fiber.Ctx) error {
	var in dto.AddTransferCartRequest
	if !bind(c, &in) {
		return nil
	}
	cart, err := h.coord.AddToCart(c.Context(), GetUserID(c), c.Params("productID"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.ToTransferCartResponse(cart))
}

// SubtractFromCart godoc
// @Summary      Restar una unidad del carrito de transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "Producto"
// @Success      200  {object}  dto.TransferCartResponse
// @Router       /api/transfers/cart/items/{productID}/subtract [post]
func (h *TransferHandler) SubtractFromCart(c *fiber.Ctx) error {
	cart, err := h.coord.SubtractFromCart(c.Context(), GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.ToTransferCartResponse(cart))
}

// RemoveFromCart godoc
// @Summary      Quitar producto del carrito de transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "Producto"
// @Success      200  {object}  dto.TransferCartResponse
// @Router       /api/transfers/cart/items/{productID} [delete]
func (h *TransferHandler) RemoveFromCart(c *fiber.Ctx) error {
	cart, err := h.coord.RemoveFromCart(c.Context(), GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.ToTransferCartResponse(cart))
}

// ClearCart godoc
// @Summary      Vaciar carrito de transferencia
// @Tags         transfers
// @Security     Bearer
// @Success      204
// @Router       /api/transfers/cart [delete]
func (h *TransferHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.coord.ClearCart(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmCart godoc
// @Summary      Confirmar carrito de transferencia
// @Description  Origen = sucursal del usuario; el carrito se vacía sólo si la transferencia se crea.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmTransferCartRequest  true  "destination_branch_id"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/transfers/cart/confirm [post]
func (h *TransferHandler) ConfirmCart(c *fiber.Ctx) error {
	var in dto.ConfirmTransferCartRequest
	if !bind(c, &in) {
		return nil
	}
	t, err := h.coord.CreateFromCart(c.Context(), GetActor(c), GetUserID(c), in.DestinationBranchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transfer.ToTransferResponse(t))
}
