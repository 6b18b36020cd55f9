package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kabidey/privity-sub000/internal/application/auth"
	"github.com/kabidey/privity-sub000/internal/application/booking"
	"github.com/kabidey/privity-sub000/internal/application/inventory"
	"github.com/kabidey/privity-sub000/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SecurityUC  *usecase.SecurityUseCase
	DirectoryUC *usecase.DirectoryUseCase
	Ledger      *inventory.Ledger
	Projector   *inventory.Projector
	Lifecycle   *booking.Lifecycle
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de acciones
	securities := protected.Group("/securities")
	securityHandler := NewSecurityHandler(deps.SecurityUC)
	securities.Post("/", RequireRole("admin"), securityHandler.Create)
	securities.Get("/", securityHandler.List)
	securities.Get("/:id", securityHandler.GetByID)
	securities.Put("/:id", RequireRole("admin"), securityHandler.Update)

	// Inventario: lotes y snapshots por acción
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Projector)
	securities.Get("/:id/lots", inventoryHandler.ListLots)
	securities.Get("/:id/snapshot", inventoryHandler.GetSnapshot)
	securities.Post("/:id/snapshot/rebuild", inventoryHandler.RebuildSnapshot)

	lots := protected.Group("/lots")
	lots.Post("/", RequireRole("admin", "ops"), inventoryHandler.CreateLot)

	// Directorio de clientes y vendedores
	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	clients := protected.Group("/clients")
	clients.Post("/", directoryHandler.CreateClient)
	clients.Get("/", directoryHandler.ListClients)
	vendors := protected.Group("/vendors")
	vendors.Post("/", directoryHandler.CreateVendor)
	vendors.Get("/", directoryHandler.ListVendors)

	// Ciclo de vida de bookings
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.Lifecycle)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Delete("/:id", bookingHandler.Delete)
	bookings.Post("/:id/approve", bookingHandler.Approve)
	bookings.Post("/:id/reject", bookingHandler.Reject)
	bookings.Post("/:id/loss-approval", bookingHandler.ResolveLossApproval)
	bookings.Post("/:id/confirmation", bookingHandler.RecordConfirmation)
	bookings.Post("/:id/payments", bookingHandler.AddPayment)
	bookings.Post("/:id/void", bookingHandler.Void)
	bookings.Post("/:id/transfer", bookingHandler.ConfirmTransfer)
}
