package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/application/sales"
)

// CartHandler carrito web (clientes) y ticket de mostrador (vendedores); misma mecánica, distinto tipo.
// La clave de sesión es el ID del usuario autenticado.
type CartHandler struct {
	svc  *sales.CartService
	kind ports.CartKind
}

// NewCartHandler construye el handler para un tipo de carrito.
func NewCartHandler(svc *sales.CartService, kind ports.CartKind) *CartHandler {
	return &CartHandler{svc: svc, kind: kind}
}

// Get godoc
// @Summary      Ver carrito / ticket
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
// @Router       /api/ticket [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.svc.Get(c.Context(), h.kind, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToCartResponse(cart))
}

// Add godoc
// @Summary      Agregar una unidad
// @Description  El precio unitario del renglón se actualiza al vigente.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "Producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productID} [post]
// @Router       /api/ticket/items/{productID} [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	cart, err := h.svc.Add(c.Context(), h.kind, GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToCartResponse(cart))
}

// Subtract godoc
// @Summary      Restar una unidad
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "Producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{productID}/subtract [post]
// @Router       /api/ticket/items/{productID}/subtract [post]
func (h *CartHandler) Subtract(c *fiber.Ctx) error {
	cart, err := h.svc.Subtract(c.Context(), h.kind, GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToCartResponse(cart))
}

// Remove godoc
// @Summary      Quitar un producto
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "Producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{productID} [delete]
// @Router       /api/ticket/items/{productID} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	cart, err := h.svc.Remove(c.Context(), h.kind, GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales.ToCartResponse(cart))
}

// Clear godoc
// @Summary      Vaciar carrito / ticket
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
// @Router       /api/ticket [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.svc.Clear(c.Context(), h.kind, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
