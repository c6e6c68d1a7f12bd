package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kioskhr_backend/internals/constants"
)

// GetRawAccessToken returns the HR token from, in order:
// 1) Locals("raw_token") set by AuthJWT
// 2) Authorization: Bearer <token>
// 3) the session cookie
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(constants.LocRawJWT).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies(constants.SessionCookie))
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(constants.LocRawJWT, strings.TrimSpace(raw))
	}
}
