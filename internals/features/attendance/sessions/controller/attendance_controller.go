package controller

import (
	"github.com/gofiber/fiber/v2"

	"kioskhr_backend/internals/features/attendance/sessions/dto"
	"kioskhr_backend/internals/features/attendance/sessions/service"
	helper "kioskhr_backend/internals/helpers"
)

// AttendanceController serves HR corrections. Every write is stamped with
// the verified HR email from AuthJWT.
type AttendanceController struct {
	Svc *service.Service
}

func NewAttendanceController(svc *service.Service) *AttendanceController {
	return &AttendanceController{Svc: svc}
}

// POST /api/hr/attendance/manual
func (ac *AttendanceController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetHRActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ManualCreateRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ac.Svc.Create(c.UserContext(), service.CreateInput{
		EmployeeID:       req.EmployeeID,
		ClockInAt:        req.ClockInAt,
		ClockOutAt:       req.ClockOutAt,
		ClockInLocation:  req.ClockInLocation,
		ClockOutLocation: req.ClockOutLocation,
		Reason:           req.Reason,
		Actor:            actor,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "attendance created", dto.FromModel(*m))
}

// PATCH /api/hr/attendance/:id
func (ac *AttendanceController) Edit(c *fiber.Ctx) error {
	actor, err := helper.GetHRActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.EditSessionRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ac.Svc.Edit(c.UserContext(), id, service.EditInput{
		ClockInAt:        req.ClockInAt,
		ClockOutAt:       req.ClockOutAt,
		ClockInLocation:  req.ClockInLocation,
		ClockOutLocation: req.ClockOutLocation,
		Reason:           req.Reason,
		Actor:            actor,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "attendance updated", dto.FromModel(*m))
}

// PUT /api/hr/attendance/day
func (ac *AttendanceController) UpsertDay(c *fiber.Ctx) error {
	actor, err := helper.GetHRActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpsertDayRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	m, created, err := ac.Svc.UpsertDay(c.UserContext(), service.UpsertDayInput{
		EmployeeCode: req.EmployeeCode,
		Date:         req.Date,
		ClockIn:      req.ClockIn,
		ClockOut:     req.ClockOut,
		Location:     req.Location,
		Reason:       req.Reason,
		Actor:        actor,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "attendance created", dto.FromModel(*m))
	}
	return helper.JsonUpdated(c, "attendance updated", dto.FromModel(*m))
}

// DELETE /api/hr/attendance/:id
// Reason comes from the JSON body, or ?reason= when the body is empty.
func (ac *AttendanceController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetHRActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	req := dto.DeleteSessionRequest{Reason: c.Query("reason")}
	if len(c.Body()) > 0 {
		if err := helper.BindAndValidate(c, &req); err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	m, err := ac.Svc.Delete(c.UserContext(), id, actor, req.Reason)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "attendance deleted", dto.FromModel(*m))
}

// GET /api/hr/attendance/:id/audit
func (ac *AttendanceController) AuditTrail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := ac.Svc.AuditTrail(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /api/hr/employees/:id/attendance
func (ac *AttendanceController) History(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 30, 200)
	rows, total, err := ac.Svc.History(c.UserContext(), id, paging)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/hr/employees/:id/audit?limit=
func (ac *AttendanceController) EmployeeAudit(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	limit := c.QueryInt("limit", 50)
	if limit > 200 {
		limit = 200
	}
	res, err := ac.Svc.EmployeeAudit(c.UserContext(), id, limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}
