package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferialink/FeriaLink/app/controllers"
	"github.com/ferialink/FeriaLink/app/repository"
	"github.com/ferialink/FeriaLink/internal/pkg/cache"
	"github.com/ferialink/FeriaLink/internal/pkg/database"
	"github.com/ferialink/FeriaLink/internal/pkg/middleware"
	"github.com/ferialink/FeriaLink/internal/pkg/oauth"
	"github.com/ferialink/FeriaLink/internal/pkg/session"
)

type HttpRouter struct {
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerAuthRoutes(app)
	h.registerHealthRoutes(app)
}

func (h HttpRouter) registerAuthRoutes(app *fiber.App) {
	authController := controllers.NewAuthController(
		repository.GetGlobalFactory().GetUserRepository())

	auth := app.Group("/auth")
	auth.Post("/login", authController.HandleLogin)
	auth.Post("/logout", authController.HandleLogout)
	auth.Get("/me", authController.HandleMe)
	auth.Get("/:provider", authController.HandleOAuthBegin)
	auth.Get("/:provider/callback", authController.HandleOAuthCallback)
}

func (h HttpRouter) registerHealthRoutes(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := database.GetDB().DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded", "database": "down",
			})
		}
		if err := cache.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded", "cache": "down",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
