package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/superette-pos/backoffice/internal/application/catalog"
	"github.com/superette-pos/backoffice/internal/application/reporting"
	"github.com/superette-pos/backoffice/internal/application/sales"
	"github.com/superette-pos/backoffice/internal/application/settings"
	"github.com/superette-pos/backoffice/internal/application/stock"
	"github.com/superette-pos/backoffice/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale *sales.CreateSaleUseCase
	Reporting  *reporting.UseCase
	Stock      *stock.UseCase
	Catalog    *catalog.UseCase
	Settings   *settings.UseCase
	Receipts   *pdf.ReceiptGenerator
	Metrics    *prometheus.Registry
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.Reporting, deps.Receipts)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Stock
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Stock)
	stockGroup.Post("/receipts", stockHandler.AddReceipt)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/movements", stockHandler.Movements)
	stockGroup.Get("/:productId", stockHandler.CurrentStock)
	stockGroup.Get("/:productId/reconcile", stockHandler.Reconcile)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/lookup", productHandler.Lookup)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Configuración de la tienda
	settingsHandler := NewSettingsHandler(deps.Settings)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Put)

	// Métricas Prometheus
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}
}
