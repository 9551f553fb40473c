package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-api/internal/application/auth"
	"github.com/jhoicas/sucursales-api/internal/application/inventory"
	"github.com/jhoicas/sucursales-api/internal/application/ports"
	"github.com/jhoicas/sucursales-api/internal/application/sales"
	"github.com/jhoicas/sucursales-api/internal/application/transfer"
	"github.com/jhoicas/sucursales-api/internal/application/usecase"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	BranchUC  *usecase.BranchUseCase
	ProductUC *usecase.ProductUseCase
	Processor *inventory.MovementProcessor
	Balances  *inventory.BalanceQuery
	Transfers *transfer.Coordinator
	Carts     *sales.CartService
	Orders    *sales.OrderService
	JWTSecret string
}

const (
	sa = entity.RoleSuperAdmin
	as = entity.RoleBranchAdmin
	ve = entity.RoleSeller
	ca = entity.RoleCashier
	cl = entity.RoleCustomer
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole())
	staff := RequireStaff()
	admins := RequireRole(sa, as)

	// Users
	users := protected.Group("/users")
	users.Get("/me", authHandler.Me)
	users.Get("/", admins, authHandler.ListUsers)
	users.Post("/", admins, authHandler.Register)

	// Branches
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", RequireRole(sa), branchHandler.Create)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", admins, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admins, productHandler.Update)
	products.Delete("/:id", admins, productHandler.Deactivate)
	products.Get("/:id/price", productHandler.CurrentPrice)
	products.Post("/:id/prices", admins, productHandler.SetPrice)

	// Inventory
	inv := protected.Group("/inventory", staff)
	inventoryHandler := NewInventoryHandler(deps.Processor, deps.Balances)
	inv.Post("/movements", admins, inventoryHandler.RegisterMovement)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/balance", inventoryHandler.GetBalance)
	inv.Get("/sufficient", inventoryHandler.HasSufficient)
	inv.Get("/low-stock", inventoryHandler.ListLowStock)
	inv.Get("/products/:id", inventoryHandler.ByProduct)
	inv.Put("/settings", admins, inventoryHandler.UpdateSettings)

	// Transfers (las rutas fijas antes de /:id)
	transfers := protected.Group("/transfers", staff)
	transferHandler := NewTransferHandler(deps.Transfers)
	transfers.Get("/cart", transferHandler.GetCart)
	transfers.Delete("/cart", transferHandler.ClearCart)
	transfers.Post("/cart/items/:productID", transferHandler.AddToCart)
	transfers.Post("/cart/items/:productID/subtract", transferHandler.SubtractFromCart)
	transfers.Delete("/cart/items/:productID", transferHandler.RemoveFromCart)
	transfers.Post("/cart/confirm", transferHandler.ConfirmCart)
	transfers.Get("/incoming", transferHandler.ListIncoming)
	transfers.Get("/outgoing", transferHandler.ListOutgoing)
	transfers.Get("/received", transferHandler.ListReceived)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Get("/:id/remito", transferHandler.Remito)
	transfers.Post("/:id/receive", transferHandler.Receive)

	// Carrito web (clientes)
	registerCart(protected.Group("/cart", RequireRole(cl, sa)), NewCartHandler(deps.Carts, ports.CartKindWeb))
	// Ticket de mostrador (vendedores)
	registerCart(protected.Group("/ticket", RequireRole(sa, as, ve)), NewCartHandler(deps.Carts, ports.CartKindTicket))

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders)
	orders.Post("/checkout", RequireRole(cl, sa), orderHandler.Checkout)
	orders.Post("/presale", RequireRole(sa, as, ve), orderHandler.PreSale)
	orders.Get("/cashier", RequireRole(sa, as, ca), orderHandler.CashierQueue)
	orders.Get("/:number", orderHandler.Get)
	orders.Post("/:number/finalize", RequireRole(sa, as, ca), orderHandler.Finalize)
	orders.Post("/:number/ready", staff, orderHandler.MarkReady)
}

func registerCart(g fiber.Router, h *CartHandler) {
	g.Get("/", h.Get)
	g.Delete("/", h.Clear)
	g.Post("/items/:productID", h.Add)
	g.Post("/items/:productID/subtract", h.Subtract)
	g.Delete("/items/:productID", h.Remove)
}
