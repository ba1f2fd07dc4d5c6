package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crane-workorders/internal/api/http/handlers"
	"github.com/spec-kit/crane-workorders/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Workorders     *handlers.WorkordersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	// Attached per route so unknown paths under /api still 404.
	requireAuth := cfg.AuthMiddleware.Handle
	api.Post("/auth/logout", requireAuth, cfg.Auth.Logout)
	api.Get("/users/me", requireAuth, cfg.Auth.Me)

	api.Get("/workorders", requireAuth, cfg.Workorders.List)
	api.Post("/workorders", requireAuth, cfg.Workorders.Create)
	api.Get("/workorders/:id", requireAuth, cfg.Workorders.Get)
	api.Put("/workorders/:id", requireAuth, cfg.Workorders.Update)
	api.Delete("/workorders/:id", requireAuth, cfg.Workorders.Delete)
}
