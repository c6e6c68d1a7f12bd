package dto

import (
	"time"

	"github.com/google/uuid"

	authModel "kioskhr_backend/internals/features/users/auth/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateAccountRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

type HRAdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	User        HRAdminResponse `json:"user"`
}

func FromHRAdmin(m authModel.HRAdminModel) HRAdminResponse {
	return HRAdminResponse{ID: m.ID, Email: m.Email}
}
