package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"kioskhr_backend/internals/constants"
	helper "kioskhr_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(c *fiber.Ctx, rawToken string) (bool, error) // true if revoked
	AllowCookieFallback bool                                              // read the session cookie when no Bearer header
}

// AuthJWT guards HR routes. On success it stores hr_id, hr_email and the raw token in locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies(constants.SessionCookie))
		}
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized")
		}

		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(c, raw)
			if err != nil {
				return helper.FromFiberError(c, err)
			}
			if black {
				return helper.JsonError(c, fiber.StatusUnauthorized, "token revoked")
			}
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		sub := strClaim(claims, "sub")
		email := strClaim(claims, "email")
		if _, err := uuid.Parse(sub); err != nil || email == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid token claims")
		}
		// exp is mandatory; jwt/v4 only checks it when present
		if _, ok := claims["exp"]; !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		c.Locals(constants.LocHRID, sub)
		c.Locals(constants.LocHREmail, email)
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
