package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-hardware/internal/application/builds"
	"github.com/jhoicas/inventario-hardware/internal/application/inventory"
	"github.com/jhoicas/inventario-hardware/internal/application/trade"
	"github.com/jhoicas/inventario-hardware/pkg/jwt"
	"github.com/jhoicas/inventario-hardware/pkg/logger"
	"github.com/jhoicas/inventario-hardware/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	ItemUC    *inventory.ItemUseCase
	BuildUC   *builds.BuildUseCase
	TradeUC   *trade.TradeUseCase
	JWTSecret string
	Log       *logger.Logger
	Metrics   *metrics.Metrics
}

// NewApp crea la aplicación Fiber con el manejo de errores, métricas y todas las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(Observe(log, deps.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token; las escrituras además un rol.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleSeller, jwt.RoleBuilder, jwt.RoleReadOnly)
	builders := RequireRole(jwt.RoleAdmin, jwt.RoleBuilder)
	sellers := RequireRole(jwt.RoleAdmin, jwt.RoleSeller)
	stockers := RequireRole(jwt.RoleAdmin, jwt.RoleBuilder, jwt.RoleSeller)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", anyRole, itemHandler.List)
	items.Post("/", stockers, itemHandler.Create)
	items.Get("/:id", anyRole, itemHandler.GetByID)
	items.Get("/:id/compatible", anyRole, itemHandler.Compatible)
	items.Post("/:id/sell", sellers, itemHandler.Sell)

	// Builds y bundles
	buildHandler := NewBuildHandler(deps.BuildUC)
	buildsGroup := protected.Group("/builds")
	buildsGroup.Post("/", builders, buildHandler.Assemble)
	buildsGroup.Put("/:id", builders, buildHandler.Edit)
	buildsGroup.Post("/:id/dismantle", builders, buildHandler.Dismantle)

	bundles := protected.Group("/bundles")
	bundles.Post("/", builders, buildHandler.CreateBundle)
	bundles.Post("/retro", sellers, buildHandler.RetroBundle)

	// Editor de slots
	drafts := protected.Group("/drafts", builders)
	drafts.Post("/", buildHandler.StartDraft)
	drafts.Get("/:id", buildHandler.GetDraft)
	drafts.Delete("/:id", buildHandler.DeleteDraft)
	drafts.Put("/:id/name", buildHandler.RenameDraft)
	drafts.Post("/:id/slots/:slot/toggle", buildHandler.ToggleSlot)
	drafts.Get("/:id/slots/:slot/candidates", buildHandler.Candidates)
	drafts.Post("/:id/save", buildHandler.SaveDraft)

	// Trades
	trades := protected.Group("/trades", sellers)
	tradeHandler := NewTradeHandler(deps.TradeUC)
	trades.Post("/preview", tradeHandler.Preview)
	trades.Post("/", tradeHandler.Execute)
}
