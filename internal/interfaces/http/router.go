package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	CategoryUC  *usecase.CategoryUseCase
	PartnerUC   *usecase.PartnerUseCase
	OperationUC *inventory.OperationUseCase
	LedgerUC    *inventory.LedgerQueryUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token; las altas, cambios y
// bajas del catálogo quedan restringidas a admin e inventory_manager.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	catalogAdmin := RequireRole(jwt.RoleAdmin, jwt.RoleInventoryManager)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.DashboardUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", catalogAdmin, productHandler.Create)
	products.Put("/:id", catalogAdmin, productHandler.Update)
	products.Delete("/:id", catalogAdmin, productHandler.Delete)

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", catalogAdmin, warehouseHandler.Create)
	warehouses.Put("/:id", catalogAdmin, warehouseHandler.Update)
	warehouses.Delete("/:id", catalogAdmin, warehouseHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", catalogAdmin, categoryHandler.Create)
	categories.Put("/:id", catalogAdmin, categoryHandler.Update)
	categories.Delete("/:id", catalogAdmin, categoryHandler.Delete)

	// Partners (proveedores y clientes)
	partners := api.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Get("/", partnerHandler.List)
	partners.Post("/", catalogAdmin, partnerHandler.Create)
	partners.Put("/:id", catalogAdmin, partnerHandler.Update)
	partners.Delete("/:id", catalogAdmin, partnerHandler.Delete)

	// Operations: receipts | deliveries | transfers | adjustments
	operationHandler := NewOperationHandler(deps.OperationUC)
	operations := api.Group("/operations/:kind", operationHandler.ResolveKind)
	operations.Post("/", operationHandler.Create)
	operations.Get("/", operationHandler.List)
	operations.Get("/:id", operationHandler.GetByID)
	operations.Post("/:id/validate", operationHandler.Validate)
	operations.Delete("/:id", operationHandler.Delete)
	operations.Get("/:id/document", operationHandler.Document)

	// Stock (kardex y saldos)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock.Get("/ledger", stockHandler.Ledger)
	stock.Get("/warehouses/:id", stockHandler.WarehouseStock)
	stock.Get("/reconcile", stockHandler.Reconcile)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/kpis", dashboardHandler.GetKPIs)
	dashboard.Get("/top-selling", dashboardHandler.TopSelling)
	dashboard.Get("/recent-purchases", dashboardHandler.RecentPurchases)
}
