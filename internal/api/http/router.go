package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quickplate-service/internal/api/http/handlers"
	"github.com/spec-kit/quickplate-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Meals          *handlers.MealsHandler
	Orders         *handlers.OrdersHandler
	Loyalty        *handlers.LoyaltyHandler
	AI             *handlers.AIHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/change-password", cfg.Auth.ChangePassword)
	authGroup.Get("/users/:id", cfg.Auth.GetProfile)
	authGroup.Put("/users/:id", cfg.Auth.UpdateProfile)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	meals := app.Group("/meals")
	meals.Get("/", cfg.Meals.List)
	meals.Get("/:id", cfg.Meals.Get)
	meals.Patch("/:id/availability", cfg.Meals.SetAvailability)

	orders := app.Group("/orders")
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/user/:id", cfg.Orders.ListForUser)
	orders.Put("/:id/status", cfg.Orders.UpdateStatus)

	loyalty := app.Group("/loyalty")
	loyalty.Get("/offers", cfg.Loyalty.ListOffers)
	loyalty.Post("/redeem", cfg.Loyalty.Redeem)
	loyalty.Get("/:userId", cfg.Loyalty.Balance)

	aiGroup := app.Group("/ai")
	aiGroup.Post("/chat", cfg.AI.Chat)
	aiGroup.Get("/recommendations/:userId", cfg.AI.Recommendations)
}
