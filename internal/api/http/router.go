package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marryplan/marryplan-server/internal/api/http/handlers"
	"github.com/marryplan/marryplan-server/internal/auth"
	"github.com/marryplan/marryplan-server/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Budgets        *handlers.BudgetsHandler
	Schedules      *handlers.SchedulesHandler
	Listings       *handlers.ListingsHandler
	Halls          *handlers.HallsHandler
	Trades         *handlers.TradesHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authentication middleware runs once
// per request for every route; the guards below decide which routes require a
// principal or a role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)

	v1 := app.Group("/api/v1", auth.RequireAuthenticated())

	budgets := v1.Group("/budgets")
	budgets.Get("/", cfg.Budgets.List)
	budgets.Post("/", cfg.Budgets.Create)
	budgets.Get("/:id", cfg.Budgets.Get)
	budgets.Put("/:id", cfg.Budgets.Update)
	budgets.Delete("/:id", cfg.Budgets.Delete)

	schedules := v1.Group("/schedules")
	schedules.Get("/", cfg.Schedules.List)
	schedules.Post("/", cfg.Schedules.Create)
	schedules.Get("/:id", cfg.Schedules.Get)
	schedules.Put("/:id", cfg.Schedules.Update)
	schedules.Delete("/:id", cfg.Schedules.Delete)

	listings := v1.Group("/listings")
	listings.Get("/", cfg.Listings.List)
	listings.Post("/", cfg.Listings.Create)
	listings.Get("/:id", cfg.Listings.Get)
	listings.Put("/:id", cfg.Listings.Update)
	listings.Delete("/:id", cfg.Listings.Delete)

	halls := v1.Group("/halls")
	halls.Get("/", cfg.Halls.List)
	halls.Post("/", cfg.Halls.Create)
	halls.Get("/:id", cfg.Halls.Get)
	halls.Put("/:id", cfg.Halls.Update)
	halls.Delete("/:id", cfg.Halls.Delete)

	v1.Get("/trades", cfg.Trades.Lookup)

	admin := v1.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/metrics", cfg.Admin.Metrics)
}
