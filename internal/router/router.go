package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/outlierlens/outlierlens-go/internal/handler"
	"github.com/outlierlens/outlierlens-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Search   *handler.SearchHandler
	Analysis *handler.AnalysisHandler
	Groups   *handler.GroupsHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	api.Get("/search", h.Search.Search, middleware.NewSearchRateLimiter().Handler())
	api.Post("/videos/:videoId/analysis", h.Analysis.Analyze, middleware.NewAnalysisRateLimiter().Handler())
	api.Get("/channel-groups", h.Groups.List)
	api.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
