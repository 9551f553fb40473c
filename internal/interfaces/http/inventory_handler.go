package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/application/inventory"
)

// InventoryHandler maneja movimientos y consultas de stock (protegido).
type InventoryHandler struct {
	processor *inventory.MovementProcessor
	query     *inventory.BalanceQuery
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(processor *inventory.MovementProcessor, query *inventory.BalanceQuery) *InventoryHandler {
	return &InventoryHandler{processor: processor, query: query}
}

// branchParam sucursal del query o, si falta, la del usuario.
func branchParam(c *fiber.Ctx) string {
	return c.Query("branch_id", GetBranchID(c))
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  AJU, SAL y WEB restan; ENT suma. Las transferencias van por /api/transfers.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, branch_id, kind, quantity"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !bind(c, &in) {
		return nil
	}
	out, err := h.processor.RegisterMovementFromRequest(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de un producto en una sucursal
// @Description  Un par sin movimientos devuelve cantidad 0 y los valores por defecto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "Producto"
// @Param        branch_id   query  string  false  "Sucursal (por defecto la del usuario)"
// @Success      200  {object}  dto.StockBalanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/balance [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	out, err := h.query.GetStock(c.Context(), c.Query("product_id"), branchParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// HasSufficient godoc
// @Summary      Verificar disponibilidad
// @Description  Informativo: el saldo puede cambiar antes de aplicar la operación real.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "Producto"
// @Param        branch_id   query  string  false  "Sucursal (por defecto la del usuario)"
// @Param        quantity    query  int     true   "Cantidad requerida"
// @Success      200  {object}  dto.SufficiencyDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/sufficient [get]
func (h *InventoryHandler) HasSufficient(c *fiber.Ctx) error {
	productID, branchID, qty := c.Query("product_id"), branchParam(c), c.QueryInt("quantity", 0)
	ok, err := h.query.HasSufficient(c.Context(), productID, branchID, qty)
	if err != nil {
		return respondError(c, err)
	}
	available, err := h.query.GetBalance(c.Context(), productID, branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SufficiencyDTO{
		ProductID:  productID,
		BranchID:   branchID,
		Requested:  qty,
		Available:  available,
		Sufficient: ok,
	})
}

// ByProduct godoc
// @Summary      Stock de un producto por sucursal
// @Description  Una entrada por sucursal; las que no tienen registro figuran con 0.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id} [get]
func (h *InventoryHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.query.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal (por defecto la del usuario)"
// @Success      200  {array}   dto.LowStockDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.query.ListLowStock(c.Context(), branchParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Del más reciente al más antiguo. Con product_id filtra por producto; si no, por sucursal.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        branch_id   query  string  false  "Sucursal"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementDTO
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	branchID := c.Query("branch_id")
	if productID == "" && branchID == "" {
		branchID = GetBranchID(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.query.ListMovements(c.Context(), productID, branchID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": out,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// UpdateSettings godoc
// @Summary      Umbral mínimo y ubicación
// @Description  Nunca cambia la cantidad.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStockSettingsRequest  true  "product_id, branch_id, minimum_threshold, location"
// @Success      200   {object}  dto.StockBalanceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory/settings [put]
func (h *InventoryHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateStockSettingsRequest
	if !bind(c, &in) {
		return nil
	}
	out, err := h.query.UpdateSettings(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
