package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "kioskhr_backend/internals/features/users/auth/model"
	authRepo "kioskhr_backend/internals/features/users/auth/repository"
)

var (
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	ErrAdminNotFound      = fiber.NewError(fiber.StatusNotFound, "account not found")
	ErrEmailTaken         = fiber.NewError(fiber.StatusConflict, "email already in use")
	ErrNothingToUpdate    = fiber.NewError(fiber.StatusBadRequest, "nothing to update")
)

func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Authenticate returns the admin when email and password match. Unknown
// email and wrong password yield the same error.
func Authenticate(ctx context.Context, db *gorm.DB, email, password string) (*authModel.HRAdminModel, error) {
	admin, err := authRepo.FindAdminByEmail(ctx, db, NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if CheckPasswordHash(admin.Password, password) != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

func GetAdmin(ctx context.Context, db *gorm.DB, id uuid.UUID) (*authModel.HRAdminModel, error) {
	admin, err := authRepo.FindAdminByID(ctx, db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	return admin, err
}

// UpdateAccount changes email and/or password of the signed-in admin.
func UpdateAccount(ctx context.Context, db *gorm.DB, id uuid.UUID, email, password *string) (*authModel.HRAdminModel, error) {
	admin, err := GetAdmin(ctx, db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if email != nil {
		if e := NormalizeEmail(*email); e != admin.Email {
			taken, err := authRepo.EmailTakenByOther(ctx, db, e, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrEmailTaken
			}
			updates["email"] = e
		}
	}
	if password != nil {
		hash, err := HashPassword(*password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := authRepo.UpdateAdmin(ctx, db, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return GetAdmin(ctx, db, id)
}

// CreateAdmin is used by the seed command; existing emails are left alone.
func CreateAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	return authRepo.EnsureAdmin(ctx, db, &authModel.HRAdminModel{
		Email:    NormalizeEmail(email),
		Password: hash,
	})
}
