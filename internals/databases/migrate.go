package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	auditModel "kioskhr_backend/internals/features/attendance/audit/model"
	sessionModel "kioskhr_backend/internals/features/attendance/sessions/model"
	employeeModel "kioskhr_backend/internals/features/employees/directory/model"
	authModel "kioskhr_backend/internals/features/users/auth/model"
)

// Migrate creates or updates every table plus the partial unique index
// that allows one open session per employee. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employeeModel.EmployeeModel{},
		&sessionModel.AttendanceSessionModel{},
		&auditModel.AttendanceAuditEventModel{},
		&authModel.HRAdminModel{},
		&authModel.TokenBlacklist{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// postgres and sqlite both accept this form
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ` + sessionModel.OpenSessionIndex +
		` ON attendance_sessions (employee_id) WHERE clock_out_at IS NULL`).Error; err != nil {
		return fmt.Errorf("create %s: %w", sessionModel.OpenSessionIndex, err)
	}

	// rows created before name_key existed
	if err := db.Exec(`UPDATE employees SET name_key = LOWER(TRIM(name)) WHERE name_key = ''`).Error; err != nil {
		return fmt.Errorf("backfill name_key: %w", err)
	}

	log.Println("[INFO] migrations applied")
	return nil
}
