package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/tu-usuario/pos-admin/internal/application/analytics"
	appinventory "github.com/tu-usuario/pos-admin/internal/application/inventory"
	"github.com/tu-usuario/pos-admin/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *appanalytics.DashboardUseCase
	InventoryUC *appinventory.RegisterTransactionUseCase
	ItemUC      *usecase.ItemUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo va protegido con Bearer Token:
// la emisión de tokens es del servicio de identidad externo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Dashboard (lecturas derivadas del log)
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/metrics", dashboardHandler.GetMetrics)
	dashboard.Get("/trends", dashboardHandler.GetTrends)

	// Stock derivado (siempre sobre el historial completo)
	stock := api.Group("/stock")
	stock.Get("/levels", dashboardHandler.GetStockLevels)
	stock.Get("/low", dashboardHandler.GetLowStock)

	// Log de transacciones; registrar requiere rol de bodega o admin
	transactions := api.Group("/transactions")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	transactions.Post("/", RequireRole(RoleAdmin, RoleBodeguero), inventoryHandler.Register)
	transactions.Get("/", inventoryHandler.List)

	// Catálogo (solo lectura)
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
}
