package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskhr_backend/internals/features/employees/directory/dto"
	"kioskhr_backend/internals/features/employees/directory/service"
	helper "kioskhr_backend/internals/helpers"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GET /api/hr/employees?page=&per_page=&q=&include_archived=
func (ec *EmployeeController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)
	rows, total, err := service.List(c.UserContext(), ec.DB, paging, c.Query("q"), c.QueryBool("include_archived", false))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/hr/employees/:id
func (ec *EmployeeController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.Get(c.UserContext(), ec.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// POST /api/hr/employees
func (ec *EmployeeController) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.Create(c.UserContext(), ec.DB, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "employee created", dto.FromModel(*m))
}

// PATCH /api/hr/employees/:id
func (ec *EmployeeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateEmployeeRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.Update(c.UserContext(), ec.DB, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "employee updated", dto.FromModel(*m))
}

// DELETE /api/hr/employees/:id archives; ?purge=true&confirm=<code> deletes for good.
func (ec *EmployeeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !c.QueryBool("purge", false) {
		m, err := service.Archive(c.UserContext(), ec.DB, id)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		return helper.JsonDeleted(c, "employee archived", dto.FromModel(*m))
	}

	actor, err := helper.GetHRActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := service.Purge(c.UserContext(), ec.DB, id, c.Query("confirm"), actor, c.Query("reason"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "employee purged", fiber.Map{
		"employee":         dto.FromModel(res.Employee),
		"sessions_removed": res.SessionsRemoved,
	})
}
