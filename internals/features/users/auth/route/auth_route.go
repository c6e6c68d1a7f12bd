package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kioskhr_backend/internals/features/users/auth/controller"
	rateLimiter "kioskhr_backend/internals/middlewares"
)

// AuthPublicRoutes mounts /api/auth endpoints that need no token.
func AuthPublicRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	g := app.Group("/api/auth")
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
}

// AuthProtectedRoutes mounts token-guarded /api/auth endpoints; guard is AuthJWT.
func AuthProtectedRoutes(app *fiber.App, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewAuthController(db)

	g := app.Group("/api/auth")
	g.Post("/logout", guard, ctrl.Logout)
	g.Get("/me", guard, ctrl.Me)
	g.Patch("/account", guard, ctrl.UpdateAccount)
}
