package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/superette-pos/backoffice/internal/application/catalog"
	"github.com/superette-pos/backoffice/internal/application/reporting"
	"github.com/superette-pos/backoffice/internal/application/sales"
	appsettings "github.com/superette-pos/backoffice/internal/application/settings"
	"github.com/superette-pos/backoffice/internal/application/stock"
	"github.com/superette-pos/backoffice/internal/domain/event"
	"github.com/superette-pos/backoffice/internal/infrastructure/metrics"
	infrapdf "github.com/superette-pos/backoffice/internal/infrastructure/pdf"
	"github.com/superette-pos/backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/superette-pos/backoffice/internal/interfaces/http"
	"github.com/superette-pos/backoffice/pkg/config"
	"github.com/superette-pos/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	// Adaptadores atados al pool para lecturas fuera de transacción. Las
	// mutaciones pasan por el TxRunner, que ata los repos a la tx.
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos de dominio: métricas y bitácora se suscriben aquí, los casos
	// de uso solo publican.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	dispatcher := event.NewDispatcher()
	dispatcher.Subscribe(metrics.NewCollector(registry))
	dispatcher.Subscribe(event.HandlerFunc(func(_ context.Context, e event.Event) {
		switch ev := e.(type) {
		case event.SaleCommitted:
			log.Info().
				Int64("sale_id", ev.SaleID).
				Str("total_gross", ev.TotalGross.StringFixed(3)).
				Str("payment_method", ev.PaymentMethod).
				Msg("venta confirmada")
		case event.SaleRejected:
			log.Warn().Str("reason", ev.Reason).Msg("venta rechazada")
		case event.StockReceived:
			log.Info().
				Int64("product_id", ev.ProductID).
				Str("qty", ev.Qty.StringFixed(3)).
				Str("reference", ev.Reference).
				Msg("entrada de mercadería")
		}
	}))

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, dispatcher)
	stockUC := stock.NewUseCase(txRunner, productRepo, movementRepo, dispatcher)
	catalogUC := catalog.NewUseCase(productRepo)
	reportingUC := reporting.NewUseCase(saleRepo, settingsRepo)
	settingsUC := appsettings.NewUseCase(settingsRepo)
	receipts := infrapdf.NewReceiptGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale: createSaleUC,
		Reporting:  reportingUC,
		Stock:      stockUC,
		Catalog:    catalogUC,
		Settings:   settingsUC,
		Receipts:   receipts,
		Metrics:    registry,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
