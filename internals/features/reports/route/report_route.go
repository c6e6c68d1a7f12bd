package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskhr_backend/internals/features/reports/controller"
	"kioskhr_backend/internals/features/reports/service"
)

// ReportHRRoutes mounts under an already guarded /api/hr group.
func ReportHRRoutes(hr fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(service.New(db))

	g := hr.Group("/reports")
	g.Get("/dashboard", ctrl.Dashboard)
	g.Get("/payroll", ctrl.Payroll)
	g.Get("/payroll/export", ctrl.PayrollExport)
	g.Get("/weekly-history", ctrl.WeeklyHistory)

	hr.Get("/employees/:id/stats", ctrl.EmployeeStats)
}
