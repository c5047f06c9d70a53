package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	appanalytics "github.com/jhoicas/Manufactura-api/internal/application/analytics"
	"github.com/jhoicas/Manufactura-api/internal/application/auth"
	"github.com/jhoicas/Manufactura-api/internal/application/authz"
	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/application/purchasing"
	"github.com/jhoicas/Manufactura-api/internal/application/sales"
	"github.com/jhoicas/Manufactura-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	MaterialUC    *usecase.RawMaterialUseCase
	InventoryUC   *inventory.UseCase
	Replenishment *inventory.ReplenishmentUseCase
	TransferUC    *inventory.TransferUseCase
	PurchaseUC    *purchasing.UseCase
	BatchUC       *production.BatchUseCase
	CostUC        *production.CostUseCase
	SaleUC        *sales.UseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ReportUC      *appanalytics.ReportUseCase
	ActivityUC    *activity.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	can := RequireCapability

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	users := protected.Group("/users", can(authz.UserManage))
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.ListUsers)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", can(authz.CatalogRead), productHandler.List)
	products.Get("/:id", can(authz.CatalogRead), productHandler.GetByID)
	products.Post("/", can(authz.CatalogWrite), productHandler.Create)
	products.Put("/:id", can(authz.CatalogWrite), productHandler.Update)
	products.Delete("/:id", can(authz.CatalogWrite), productHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Replenishment, deps.PurchaseUC)
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials := protected.Group("/materials")
	materials.Get("/low-stock", can(authz.PurchaseManage), inventoryHandler.LowStock)
	materials.Get("/", can(authz.CatalogRead), materialHandler.List)
	materials.Get("/:id", can(authz.CatalogRead), materialHandler.GetByID)
	materials.Post("/", can(authz.CatalogWrite), materialHandler.Create)
	materials.Put("/:id", can(authz.CatalogWrite), materialHandler.Update)

	purchases := protected.Group("/purchases", can(authz.PurchaseManage))
	purchases.Post("/", inventoryHandler.RecordPurchase)
	purchases.Get("/", inventoryHandler.ListPurchases)

	// Inventario
	inv := protected.Group("/inventory")
	inv.Get("/", can(authz.InventoryRead), inventoryHandler.List)
	inv.Get("/quantity", can(authz.InventoryRead), inventoryHandler.Quantity)
	inv.Get("/:id", can(authz.InventoryRead), inventoryHandler.Get)
	inv.Get("/:id/adjustments", can(authz.InventoryRead), inventoryHandler.Adjustments)
	inv.Post("/:id/adjustments", can(authz.InventoryAdjust), inventoryHandler.Adjust)

	// Traslados y avisos
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers := protected.Group("/transfers")
	transfers.Get("/", can(authz.InventoryRead), transferHandler.List)
	transfers.Get("/:id", can(authz.InventoryRead), transferHandler.Get)
	transfers.Post("/", can(authz.TransferCreate), transferHandler.Transfer)
	transfers.Post("/pending", can(authz.TransferCreate), transferHandler.CreatePending)
	transfers.Post("/:id/confirm", can(authz.TransferConfirm), transferHandler.Confirm)

	notifications := protected.Group("/notifications", can(authz.NotificationRead))
	notifications.Get("/", transferHandler.Notifications)
	notifications.Post("/:id/read", transferHandler.MarkRead)

	// Producción
	batchHandler := NewBatchHandler(deps.BatchUC, deps.CostUC)
	batches := protected.Group("/batches")
	batches.Get("/", can(authz.BatchRead), batchHandler.List)
	batches.Get("/:id", can(authz.BatchRead), batchHandler.Get)
	batches.Get("/:id/history", can(authz.BatchRead), batchHandler.History)
	batches.Post("/", can(authz.BatchWrite), batchHandler.Create)
	batches.Patch("/:id/status", can(authz.BatchWrite), batchHandler.Advance)
	batches.Get("/:id/costs", can(authz.CostManage), batchHandler.ListCosts)
	batches.Post("/:id/costs", can(authz.CostManage), batchHandler.AddCost)
	batches.Get("/:id/cost-breakdown", can(authz.CostManage), batchHandler.CostBreakdown)
	batches.Get("/:id/cost-sheet.pdf", can(authz.CostManage), batchHandler.CostSheet)

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := protected.Group("/sales", can(authz.SaleManage))
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.Get)

	// Dashboard, reportes y actividad
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC, deps.ActivityUC)
	protected.Get("/dashboard/summary", can(authz.ReportRead), dashboardHandler.GetSummary)
	protected.Get("/reports/workbook.xlsx", can(authz.ReportRead), dashboardHandler.Workbook)
	protected.Get("/activity", can(authz.ActivityRead), dashboardHandler.Activity)
}
