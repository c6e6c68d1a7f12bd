package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "kioskhr_backend/internals/features/users/auth/model"
)

func FindAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*authModel.HRAdminModel, error) {
	var admin authModel.HRAdminModel
	if err := db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func FindAdminByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*authModel.HRAdminModel, error) {
	var admin authModel.HRAdminModel
	if err := db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func EmailTakenByOther(ctx context.Context, db *gorm.DB, email string, id uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&authModel.HRAdminModel{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&n).Error
	return n > 0, err
}

func UpdateAdmin(ctx context.Context, db *gorm.DB, id uuid.UUID, updates map[string]any) error {
	return db.WithContext(ctx).Model(&authModel.HRAdminModel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// EnsureAdmin inserts the admin unless the email already exists.
func EnsureAdmin(ctx context.Context, db *gorm.DB, admin *authModel.HRAdminModel) (bool, error) {
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(admin)
	return res.RowsAffected > 0, res.Error
}
