package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Meal    *handlers.MealHandler
	Order   *handlers.OrderHandler
	Tracker *handlers.TrackerHandler
}

func Setup(app *fiber.App, cfg *config.Config, accounts *services.AccountService, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth: stricter 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Public catalog
	api.Get("/meals", h.Meal.List)
	api.Get("/meals/:id", h.Meal.Get)
	api.Get("/prices", h.Order.Prices)

	// JWT middleware is applied per route so the public routes above stay open
	jwt := middleware.JWTProtected(cfg)

	api.Get("/me", jwt, h.Auth.Me)
	api.Put("/me", jwt, h.Auth.UpdateMe)

	api.Get("/plans/:duration/recommendation", jwt, h.Order.Recommendation)
	api.Post("/plans/toggle-ingredient", jwt, h.Order.ToggleIngredient)

	api.Post("/orders", jwt, h.Order.Place)
	api.Get("/orders", jwt, h.Order.List)
	api.Post("/orders/:id/logs/retry", jwt, h.Order.RetryLogs)

	// Fixed paths before :date
	api.Get("/logs/today", jwt, h.Tracker.Today)
	api.Get("/logs/weekly", jwt, h.Tracker.Weekly)
	api.Get("/logs/:date", jwt, h.Tracker.Get)
	api.Post("/logs/:date", jwt, h.Tracker.Log)

	admin := api.Group("/admin", jwt, middleware.AdminRequired(accounts, cfg))
	admin.Post("/meals", h.Meal.Create)
	admin.Put("/meals/:id", h.Meal.Update)
	admin.Post("/meals/:id/toggle", h.Meal.Toggle)
}
