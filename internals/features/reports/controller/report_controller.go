package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kioskhr_backend/internals/features/reports/service"
	helper "kioskhr_backend/internals/helpers"
	"kioskhr_backend/internals/helpers/dbtime"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	Svc *service.Service
}

func NewReportController(svc *service.Service) *ReportController {
	return &ReportController{Svc: svc}
}

func periodsParam(c *fiber.Ctx) (int, error) {
	n := c.QueryInt("periods", 0)
	if n < 0 || n > service.MaxPayrollPeriods {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("periods must be between 1 and %d", service.MaxPayrollPeriods))
	}
	return n, nil
}

// GET /api/hr/reports/dashboard?date=YYYY-MM-DD
func (rc *ReportController) Dashboard(c *fiber.Ctx) error {
	var target *time.Time
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := dbtime.ParseDate(raw, dbtime.Loc())
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		target = &d
	}
	res, err := rc.Svc.Dashboard(c.UserContext(), target)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /api/hr/employees/:id/stats
func (rc *ReportController) EmployeeStats(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := rc.Svc.EmployeeStats(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /api/hr/reports/payroll?periods=N
func (rc *ReportController) Payroll(c *fiber.Ctx) error {
	n, err := periodsParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := rc.Svc.Payroll(c.UserContext(), n)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /api/hr/reports/payroll/export?periods=N
func (rc *ReportController) PayrollExport(c *fiber.Ctx) error {
	n, err := periodsParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	body, err := rc.Svc.PayrollXLSX(c.UserContext(), n)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	name := fmt.Sprintf("payroll-%s.xlsx", dbtime.DateKey(time.Now(), dbtime.Loc()))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Status(fiber.StatusOK).Send(body)
}

// GET /api/hr/reports/weekly-history
func (rc *ReportController) WeeklyHistory(c *fiber.Ctx) error {
	res, err := rc.Svc.WeeklyHistory(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}
