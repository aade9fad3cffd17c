package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/stock-tracker-api/internal/application/analytics"
	"github.com/jhoicas/stock-tracker-api/internal/application/inventory"
	"github.com/jhoicas/stock-tracker-api/internal/application/usecase"
	"github.com/jhoicas/stock-tracker-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	MovementUC  *usecase.MovementUseCase
	AdjustStock *inventory.AdjustStockUseCase
	DashboardUC *appanalytics.DashboardUseCase
	StockReport StockReportGenerator // opcional
	JWTSecret   string               // vacío: sin middleware de actor
	Logger      *logger.Logger
}

// NewApp crea la app Fiber con el ErrorHandler del envelope {code, message} y recover.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(ActorMiddleware(deps.JWTSecret))
	}

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Patch("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Products: las exportaciones van antes de /:id
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	exportHandler := NewExportHandler(deps.ProductUC, deps.StockReport)
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.MovementUC)
	products.Get("/export_csv", exportHandler.CSV)
	products.Get("/export_xlsx", exportHandler.XLSX)
	products.Get("/export_pdf", exportHandler.PDF)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Replace)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/adjust_stock", inventoryHandler.AdjustStock)

	// Stock movements
	movements := api.Group("/stock-movements")
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.CreateMovement)
	movements.Get("/:id", inventoryHandler.GetMovement)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
