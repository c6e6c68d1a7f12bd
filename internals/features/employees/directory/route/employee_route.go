package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskhr_backend/internals/features/employees/directory/controller"
)

// EmployeeHRRoutes mounts under an already guarded /api/hr group.
func EmployeeHRRoutes(hr fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEmployeeController(db)

	g := hr.Group("/employees")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
