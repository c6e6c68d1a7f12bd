package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kioskhr_backend/internals/constants"
	"kioskhr_backend/internals/features/attendance/sessions/dto"
	"kioskhr_backend/internals/features/attendance/sessions/model"
	directoryService "kioskhr_backend/internals/features/employees/directory/service"
	employeeModel "kioskhr_backend/internals/features/employees/directory/model"
	helper "kioskhr_backend/internals/helpers"
)

var (
	ErrAlreadyClockedIn  = fiber.NewError(fiber.StatusBadRequest, "already clocked in")
	ErrNotClockedIn      = fiber.NewError(fiber.StatusBadRequest, "not clocked in")
	ErrSessionNotFound   = fiber.NewError(fiber.StatusNotFound, "attendance record not found")
	ErrInvalidTimeRange  = fiber.NewError(fiber.StatusBadRequest, "clock out time must be after clock in time")
	ErrReasonRequired    = fiber.NewError(fiber.StatusBadRequest, "reason is required")
	ErrOpenSessionExists = fiber.NewError(fiber.StatusConflict, "employee already has an open session")
	ErrInvalidReference  = fiber.NewError(fiber.StatusBadRequest, "invalid employee reference")
	ErrInvalidDateTime   = fiber.NewError(fiber.StatusBadRequest, "invalid date or time format")
)

// mapDatabaseError classifies write errors. onUnique is returned for a
// unique-index violation, which on this table only comes from the
// one-open-session index.
func mapDatabaseError(op string, err error, onUnique error) error {
	switch {
	case err == nil:
		return nil
	case helper.IsUniqueViolation(err):
		return onUnique
	case helper.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func cleanLocation(loc *string) *string {
	if loc == nil {
		return nil
	}
	v := strings.TrimSpace(*loc)
	if v == "" {
		return nil
	}
	return &v
}

// lockEmployee serializes clock actions per employee on postgres. Other
// dialects rely on the open-session index alone.
func lockEmployee(tx *gorm.DB, employeeID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	var e employeeModel.EmployeeModel
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Take(&e, "id = ?", employeeID).Error
}

func findOpenSession(tx *gorm.DB, employeeID uuid.UUID) (*model.AttendanceSessionModel, error) {
	var open model.AttendanceSessionModel
	err := tx.Where("employee_id = ? AND clock_out_at IS NULL", employeeID).
		Order("clock_in_at DESC").
		Take(&open).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &open, nil
}

/* ===================== State resolver ===================== */

// ClockIn opens a session for the employee resolved from identifier.
func (s *Service) ClockIn(ctx context.Context, identifier string, location *string) (*dto.ClockResponse, error) {
	emp, err := directoryService.Lookup(ctx, s.DB, identifier)
	if err != nil {
		return nil, err
	}
	now := s.now()
	loc := cleanLocation(location)

	var sess model.AttendanceSessionModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockEmployee(tx, emp.ID); err != nil {
			return fmt.Errorf("lock employee: %w", err)
		}
		open, err := findOpenSession(tx, emp.ID)
		if err != nil {
			return fmt.Errorf("find open session: %w", err)
		}
		if open != nil {
			return ErrAlreadyClockedIn
		}

		sess = model.AttendanceSessionModel{
			EmployeeID:      emp.ID,
			ClockInAt:       now,
			Location:        loc,
			ClockInLocation: loc,
		}
		return mapDatabaseError("insert session", tx.Create(&sess).Error, ErrAlreadyClockedIn)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ATTENDANCE] clock-in %s at %s", emp.EmployeeCode, now.Format(time.RFC3339))
	return &dto.ClockResponse{
		Employee: dto.BriefOf(*emp),
		Session:  dto.FromModel(sess),
		Status:   constants.EmployeeStatusClockedIn,
	}, nil
}

// ClockOut closes the open session and records total hours.
func (s *Service) ClockOut(ctx context.Context, identifier string, location *string) (*dto.ClockResponse, error) {
	emp, err := directoryService.Lookup(ctx, s.DB, identifier)
	if err != nil {
		return nil, err
	}
	now := s.now()
	loc := cleanLocation(location)

	var sess model.AttendanceSessionModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockEmployee(tx, emp.ID); err != nil {
			return fmt.Errorf("lock employee: %w", err)
		}
		open, err := findOpenSession(tx, emp.ID)
		if err != nil {
			return fmt.Errorf("find open session: %w", err)
		}
		if open == nil {
			return ErrNotClockedIn
		}

		hours := model.HoursBetween(open.ClockInAt, now)
		res := tx.Model(&model.AttendanceSessionModel{}).
			Where("id = ? AND clock_out_at IS NULL", open.ID).
			Updates(map[string]any{
				"clock_out_at":       now,
				"total_hours":        hours,
				"clock_out_location": loc,
			})
		if res.Error != nil {
			return fmt.Errorf("close session: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotClockedIn
		}

		open.ClockOutAt = &now
		open.TotalHours = &hours
		open.ClockOutLocation = loc
		sess = *open
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ATTENDANCE] clock-out %s at %s (%.2fh)", emp.EmployeeCode, now.Format(time.RFC3339), *sess.TotalHours)
	return &dto.ClockResponse{
		Employee: dto.BriefOf(*emp),
		Session:  dto.FromModel(sess),
		Status:   constants.EmployeeStatusClockedOut,
	}, nil
}

// Status reports whether the employee currently has an open session.
func (s *Service) Status(ctx context.Context, identifier string) (*dto.StatusResponse, error) {
	emp, err := directoryService.Lookup(ctx, s.DB, identifier)
	if err != nil {
		return nil, err
	}
	open, err := findOpenSession(s.DB.WithContext(ctx), emp.ID)
	if err != nil {
		return nil, fmt.Errorf("find open session: %w", err)
	}
	resp := &dto.StatusResponse{
		Employee: dto.BriefOf(*emp),
		Status:   constants.EmployeeStatusClockedOut,
	}
	if open != nil {
		r := dto.FromModel(*open)
		resp.Status = constants.EmployeeStatusClockedIn
		resp.IsClockedIn = true
		resp.OpenSession = &r
	}
	return resp, nil
}

// History lists an employee's sessions, newest clock-in first. Archived
// employees keep their history.
func (s *Service) History(ctx context.Context, employeeID uuid.UUID, paging helper.Paging) ([]model.AttendanceSessionModel, int64, error) {
	var emp employeeModel.EmployeeModel
	err := s.DB.WithContext(ctx).Unscoped().Select("id").Take(&emp, "id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, directoryService.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load employee: %w", err)
	}

	q := s.DB.WithContext(ctx).Model(&model.AttendanceSessionModel{}).
		Where("employee_id = ?", employeeID).
		Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}
	var rows []model.AttendanceSessionModel
	if err := q.Order("clock_in_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	return rows, total, nil
}
