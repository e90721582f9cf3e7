package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/bodega-ledger/internal/application/auth"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/application/report"
	"github.com/jhoicas/bodega-ledger/internal/application/usecase"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.LedgerUseCase
	Batches       *inventory.BatchService
	Replenishment *inventory.ReplenishmentUseCase
	ProductUC     *usecase.ProductUseCase
	SettingsUC    *usecase.SettingsUseCase
	SessionUC     *auth.SessionUseCase
	Reports       *report.ReportUseCase
	PDF           ReportPDF
	Location      *time.Location

	// Opcionales
	Hub     *ws.Hub
	Metrics nethttp.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}
	if deps.Hub != nil {
		registerWebSocket(app, deps.Hub)
	}

	// Toda la API pasa por la sesión del dispositivo; solo los eventos la exigen.
	api := app.Group("/api", SessionMiddleware(deps.SessionUC))

	sessionHandler := NewSessionHandler(deps.SessionUC)
	api.Post("/session", sessionHandler.Connect)
	api.Get("/session", sessionHandler.Current)

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Put)

	// Eventos del escáner
	eventHandler := NewEventHandler(deps.Ledger, deps.Location)
	api.Post("/events", eventHandler.Process)
	api.Post("/sales/:id/cancel", eventHandler.CancelSale)
	api.Post("/batches/:id/return", eventHandler.ReturnBatch)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.Get)
	products.Put("/:sku", productHandler.Update)

	// Consultas del libro
	ledgerHandler := NewLedgerHandler(deps.Batches, deps.Reports, deps.Location)
	api.Get("/batches", ledgerHandler.Batches)
	api.Get("/sales", ledgerHandler.Sales)
	api.Get("/returns", ledgerHandler.Returns)
	api.Get("/movements", ledgerHandler.Movements)

	// Reportes y exportaciones
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.Replenishment, deps.PDF, deps.Location)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/inventory.csv", reportHandler.InventoryCSV)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/daily.csv", reportHandler.DailyCSV)
	reports.Get("/daily.pdf", reportHandler.DailyPDF)
	reports.Get("/replenishment", reportHandler.Replenishment)
}

// registerWebSocket expone /ws: las vistas reciben cada evento aplicado o rechazado.
func registerWebSocket(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			_ = c.Close()
			return
		}
		defer hub.Leave(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
