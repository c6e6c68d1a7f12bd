package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kioskhr_backend/internals/constants"
)

// GetHRActor returns the verified HR email placed in locals by AuthJWT.
func GetHRActor(c *fiber.Ctx) (string, error) {
	if v, ok := c.Locals(constants.LocHREmail).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
}

func GetHRID(c *fiber.Ctx) (uuid.UUID, error) {
	if v, ok := c.Locals(constants.LocHRID).(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
