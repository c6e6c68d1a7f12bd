package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskhr_backend/internals/features/attendance/sessions/controller"
	"kioskhr_backend/internals/features/attendance/sessions/service"
	rateLimiter "kioskhr_backend/internals/middlewares"
)

// KioskRoutes are public; the kiosk has no HR token.
func KioskRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewKioskController(service.New(db))

	g := app.Group("/api/kiosk", rateLimiter.KioskRateLimiter())
	g.Post("/clock-in", ctrl.ClockIn)
	g.Post("/clock-out", ctrl.ClockOut)
	g.Get("/status", ctrl.Status)
}

// AttendanceHRRoutes mounts under an already guarded /api/hr group.
func AttendanceHRRoutes(hr fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(service.New(db))

	g := hr.Group("/attendance")
	g.Post("/manual", ctrl.Create)
	g.Put("/day", ctrl.UpsertDay)
	g.Patch("/:id", ctrl.Edit)
	g.Delete("/:id", ctrl.Delete)
	g.Get("/:id/audit", ctrl.AuditTrail)

	hr.Get("/employees/:id/attendance", ctrl.History)
	hr.Get("/employees/:id/audit", ctrl.EmployeeAudit)
}
