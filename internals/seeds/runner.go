package seeds

import (
	"context"

	"gorm.io/gorm"

	"kioskhr_backend/internals/seeds/employees"
	hradmins "kioskhr_backend/internals/seeds/users/hr_admins"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB) error {
	//* HR admins
	if err := hradmins.SeedHRAdmins(ctx, db); err != nil {
		return err
	}

	//* Employees
	return employees.SeedEmployees(ctx, db)
}
