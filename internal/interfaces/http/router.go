package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/users"
	"github.com/jhoicas/pos-api/internal/domain/policy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *users.UserUseCase
	CategoryUC  *catalog.CategoryUseCase
	ProductUC   *catalog.ProductUseCase
	MovementUC  *inventory.MovementUseCase
	LedgerQuery *inventory.LedgerQuery
	CreateSale  *sales.CreateSaleUseCase
	SaleQuery   *sales.SaleQuery
	ReceiptUC   *sales.ReceiptUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Los permisos por rol salen de
// policy, de modo que rutas y reglas no se desalineen.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	manageUsers := RequireRole(policy.RolesFor(policy.ActionManageUsers)...)
	manageCatalog := RequireRole(policy.RolesFor(policy.ActionManageCatalog)...)
	adjustStock := RequireRole(policy.RolesFor(policy.ActionAdjustStock)...)
	createSale := RequireRole(policy.RolesFor(policy.ActionCreateSale)...)
	viewReports := RequireRole(policy.RolesFor(policy.ActionViewReports)...)
	viewLedger := RequireRole(policy.RolesFor(policy.ActionViewStockLedger)...)

	// Users (protegido, admin/manager)
	userGroup := protected.Group("/users", manageUsers)
	userHandler := NewUserHandler(deps.UserUC)
	userGroup.Post("/", userHandler.Create)
	userGroup.Get("/", userHandler.List)
	userGroup.Get("/:id", userHandler.GetByID)
	userGroup.Put("/:id", userHandler.Update)
	userGroup.Delete("/:id", userHandler.Deactivate)

	// Categories (protegido; lectura para todos, escritura admin/manager)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", viewReports, categoryHandler.List)
	categories.Get("/:id", viewReports, categoryHandler.GetByID)
	categories.Post("/", manageCatalog, categoryHandler.Create)
	categories.Put("/:id", manageCatalog, categoryHandler.Update)
	categories.Delete("/:id", manageCatalog, categoryHandler.Delete)

	// Products (protegido; lectura para todos, escritura admin/manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.LedgerQuery)
	products.Get("/", viewReports, productHandler.List)
	products.Get("/:id", viewReports, productHandler.GetByID)
	products.Post("/", manageCatalog, productHandler.Create)
	products.Put("/:id", manageCatalog, productHandler.Update)
	products.Delete("/:id", manageCatalog, productHandler.Delete)
	products.Post("/:id/update-stock", adjustStock, inventoryHandler.UpdateStock)

	// Stock movements ledger (protegido)
	protected.Get("/stock-movements", viewLedger, inventoryHandler.ListMovements)

	// Sales (protegido)
	saleGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery, deps.ReceiptUC)
	saleGroup.Post("/", createSale, saleHandler.Create)
	saleGroup.Get("/", viewReports, saleHandler.List)
	saleGroup.Get("/:id", viewReports, saleHandler.GetByID)
	saleGroup.Get("/:id/receipt", viewReports, saleHandler.DownloadReceipt)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", viewReports, dashboardHandler.GetStats)
}
