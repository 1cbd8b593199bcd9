package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/anonqa-service/internal/api/http/handlers"
	apperrors "github.com/spec-kit/anonqa-service/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Users    *handlers.UsersHandler
	Messages *handlers.MessagesHandler

	GlobalLimit        fiber.Handler
	UserCreateLimit    fiber.Handler
	MessageCreateLimit fiber.Handler
}

// RegisterRoutes wires HTTP routes. Every /api route passes through the
// global limiter; the two creation routes carry an additional scoped limiter.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api", cfg.GlobalLimit)

	api.Get("/health", cfg.Health.Check)

	api.Post("/users/create", cfg.UserCreateLimit, cfg.Users.Create)
	api.Get("/users/:userId", cfg.Users.Get)

	api.Post("/messages/create", cfg.MessageCreateLimit, cfg.Messages.Create)
	api.Get("/messages/:userId", cfg.Messages.List)
	api.Delete("/messages/:messageId", cfg.Messages.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewDomainError("NOT_FOUND", "Not found", fiber.StatusNotFound)
	})
}
