package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "kioskhr_backend/internals/features/users/auth/model"
)

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// BlacklistToken stores HMAC(raw) until expiresAt. Re-adding revives a purged row.
func BlacklistToken(ctx context.Context, db *gorm.DB, raw, secret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(raw) == "" || strings.TrimSpace(secret) == "" {
		return nil
	}
	row := authModel.TokenBlacklist{
		Token:     hmacHex(raw, secret),
		ExpiredAt: expiresAt.UTC(),
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{
			"expired_at": row.ExpiredAt,
			"deleted_at": nil,
		}),
	}).Create(&row).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, raw, secret string) (bool, error) {
	if db == nil || strings.TrimSpace(raw) == "" || strings.TrimSpace(secret) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(raw, secret), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired hard-deletes rows that expired before cutoff.
func PurgeExpired(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, nil
	}
	res := db.WithContext(ctx).Unscoped().
		Where("expired_at <= ?", cutoff.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
