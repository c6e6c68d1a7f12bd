package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kioskhr_backend/internals/configs"
	"kioskhr_backend/internals/constants"
	"kioskhr_backend/internals/features/users/auth/dto"
	"kioskhr_backend/internals/features/users/auth/service"
	helper "kioskhr_backend/internals/helpers"
)

type AuthController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

func (ac *AuthController) setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     constants.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", false),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}

	admin, err := service.Authenticate(c.UserContext(), ac.DB, req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	token, exp, err := service.IssueAccessToken(*admin, configs.JWTSecret, configs.JWTTTL, ac.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ac.setSessionCookie(c, token, exp)
	log.Printf("[INFO] HR login: %s", admin.Email)

	return helper.JsonOK(c, "login successful", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.FromHRAdmin(*admin),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		exp := ac.Now().Add(configs.JWTTTL)
		if claims, err := service.ParseAccessToken(raw, configs.JWTSecret); err == nil {
			exp = claims.ExpiresAt.Time
		}
		if err := service.BlacklistToken(c.UserContext(), ac.DB, raw, configs.JWTSecret, exp); err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     constants.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	return helper.JsonOK(c, "logged out", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := helper.GetHRID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	admin, err := service.GetAdmin(c.UserContext(), ac.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromHRAdmin(*admin))
}

// PATCH /api/auth/account
func (ac *AuthController) UpdateAccount(c *fiber.Ctx) error {
	id, err := helper.GetHRID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateAccountRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromFiberError(c, err)
	}
	admin, err := service.UpdateAccount(c.UserContext(), ac.DB, id, req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "account updated", dto.FromHRAdmin(*admin))
}
