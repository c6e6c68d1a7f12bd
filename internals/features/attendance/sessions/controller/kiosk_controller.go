package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kioskhr_backend/internals/features/attendance/sessions/dto"
	"kioskhr_backend/internals/features/attendance/sessions/service"
	helper "kioskhr_backend/internals/helpers"
)

type KioskController struct {
	Svc *service.Service
}

func NewKioskController(svc *service.Service) *KioskController {
	return &KioskController{Svc: svc}
}

// POST /api/kiosk/clock-in
func (kc *KioskController) ClockIn(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := kc.Svc.ClockIn(c.UserContext(), req.Identifier, req.Location)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "clocked in successfully", res)
}

// POST /api/kiosk/clock-out
func (kc *KioskController) ClockOut(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := kc.Svc.ClockOut(c.UserContext(), req.Identifier, req.Location)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "clocked out successfully", res)
}

// GET /api/kiosk/status?identifier=
func (kc *KioskController) Status(c *fiber.Ctx) error {
	identifier := strings.TrimSpace(c.Query("identifier"))
	res, err := kc.Svc.Status(c.UserContext(), identifier)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}
