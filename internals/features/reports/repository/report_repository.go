package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	employeeModel "kioskhr_backend/internals/features/employees/directory/model"
)

// SessionRow is a session joined with the fields reports need from its employee.
type SessionRow struct {
	ID               uuid.UUID
	EmployeeID       uuid.UUID
	EmployeeCode     string
	Name             string
	HourlyRate       float64
	ClockInAt        time.Time
	ClockOutAt       *time.Time
	TotalHours       *float64
	Location         *string
	ClockInLocation  *string
	ClockOutLocation *string
	IsManuallyEdited bool
}

type EmployeeRow struct {
	ID           uuid.UUID
	EmployeeCode string
	Name         string
	HourlyRate   float64
}

const sessionColumns = `s.id, s.employee_id, e.employee_code, e.name, e.hourly_rate,
	s.clock_in_at, s.clock_out_at, s.total_hours,
	s.location, s.clock_in_location, s.clock_out_location, s.is_manually_edited`

func sessionQuery(ctx context.Context, db *gorm.DB, activeOnly bool) *gorm.DB {
	q := db.WithContext(ctx).
		Table("attendance_sessions AS s").
		Select(sessionColumns).
		Joins("JOIN employees e ON e.id = s.employee_id")
	if activeOnly {
		q = q.Where("e.deleted_at IS NULL")
	}
	return q
}

func CountActiveEmployees(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&employeeModel.EmployeeModel{}).Count(&n).Error
	return n, err
}

// ListActiveEmployees is ordered by name.
func ListActiveEmployees(ctx context.Context, db *gorm.DB) ([]EmployeeRow, error) {
	var rows []EmployeeRow
	err := db.WithContext(ctx).
		Model(&employeeModel.EmployeeModel{}).
		Select("id, employee_code, name, hourly_rate").
		Order("name ASC").Order("employee_code ASC").
		Scan(&rows).Error
	return rows, err
}

// SessionsBetween returns sessions with clock-in in [from, to), oldest first.
func SessionsBetween(ctx context.Context, db *gorm.DB, from, to time.Time, activeOnly bool) ([]SessionRow, error) {
	var rows []SessionRow
	err := sessionQuery(ctx, db, activeOnly).
		Where("s.clock_in_at >= ? AND s.clock_in_at < ?", from.UTC(), to.UTC()).
		Order("s.clock_in_at ASC").
		Scan(&rows).Error
	return rows, err
}

// RecentSessions returns the sessions with the latest clock event first.
func RecentSessions(ctx context.Context, db *gorm.DB, limit int) ([]SessionRow, error) {
	var rows []SessionRow
	err := sessionQuery(ctx, db, false).
		Order("COALESCE(s.clock_out_at, s.clock_in_at) DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// EmployeeSessions returns every session of one employee, newest clock-in first.
func EmployeeSessions(ctx context.Context, db *gorm.DB, employeeID uuid.UUID) ([]SessionRow, error) {
	var rows []SessionRow
	err := sessionQuery(ctx, db, false).
		Where("s.employee_id = ?", employeeID).
		Order("s.clock_in_at DESC").
		Scan(&rows).Error
	return rows, err
}

func FindEmployee(ctx context.Context, db *gorm.DB, id uuid.UUID) (*employeeModel.EmployeeModel, error) {
	var m employeeModel.EmployeeModel
	if err := db.WithContext(ctx).Unscoped().Take(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
