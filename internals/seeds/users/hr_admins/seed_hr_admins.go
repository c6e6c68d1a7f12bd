package hradmins

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	authService "kioskhr_backend/internals/features/users/auth/service"
)

//go:embed data_hr_admins.json
var defaultAdmins []byte

type AdminSeed struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SeedHRAdmins(ctx context.Context, db *gorm.DB) error {
	return SeedHRAdminsFromJSON(ctx, db, defaultAdmins)
}

// SeedHRAdminsFromJSON skips admins whose email already exists.
func SeedHRAdminsFromJSON(ctx context.Context, db *gorm.DB, raw []byte) error {
	var inputs []AdminSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return fmt.Errorf("decode hr admin seeds: %w", err)
	}

	for _, in := range inputs {
		inserted, err := authService.CreateAdmin(ctx, db, in.Email, in.Password)
		if err != nil {
			return fmt.Errorf("seed hr admin %s: %w", in.Email, err)
		}
		if inserted {
			log.Printf("[SEED] hr admin %s created", in.Email)
		} else {
			log.Printf("[SEED] hr admin %s already exists, skipped", in.Email)
		}
	}
	return nil
}
