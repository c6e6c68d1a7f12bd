package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskhr_backend/internals/configs"
	sessionRoute "kioskhr_backend/internals/features/attendance/sessions/route"
	employeeRoute "kioskhr_backend/internals/features/employees/directory/route"
	reportRoute "kioskhr_backend/internals/features/reports/route"
	authRoute "kioskhr_backend/internals/features/users/auth/route"
	authService "kioskhr_backend/internals/features/users/auth/service"
	authMiddleware "kioskhr_backend/internals/middlewares/auth"
)

var startTime time.Time

// HRGuard builds the AuthJWT middleware shared by /api/hr and the protected /api/auth routes.
func HRGuard(db *gorm.DB, secret string) fiber.Handler {
	return authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              secret,
		AllowCookieFallback: true,
		BlacklistChecker: func(c *fiber.Ctx, raw string) (bool, error) {
			return authService.IsBlacklisted(c.UserContext(), db, raw, secret)
		},
	})
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	guard := HRGuard(db, configs.JWTSecret)

	// ===================== KIOSK (public) =====================
	log.Println("[INFO] Setting up Kiosk routes...")
	sessionRoute.KioskRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up Auth routes...")
	authRoute.AuthPublicRoutes(app, db)
	authRoute.AuthProtectedRoutes(app, db, guard)

	// ===================== HR =====================
	log.Println("[INFO] Setting up HR group (AuthJWT)...")
	hr := app.Group("/api/hr", guard)

	employeeRoute.EmployeeHRRoutes(hr, db)
	sessionRoute.AttendanceHRRoutes(hr, db)
	reportRoute.ReportHRRoutes(hr, db)
}
