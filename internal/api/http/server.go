package http

import (
	"github.com/gofiber/fiber/v2"
)

// ServerConfig carries everything NewServer wires into the fiber app.
type ServerConfig struct {
	AppName    string
	Middleware MiddlewareConfig
	Routes     RouteConfig
}

// NewServer builds the fiber app with the global middleware chain and routes.
func NewServer(cfg ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(cfg.Middleware.Logger, cfg.Middleware.Metrics),
	})
	RegisterMiddlewares(app, cfg.Middleware)
	RegisterRoutes(app, cfg.Routes)
	return app
}
