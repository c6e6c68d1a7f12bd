package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kioskhr_backend/internals/constants"
	auditService "kioskhr_backend/internals/features/attendance/audit/service"
	sessionModel "kioskhr_backend/internals/features/attendance/sessions/model"
	"kioskhr_backend/internals/features/employees/directory/dto"
	"kioskhr_backend/internals/features/employees/directory/model"
	helper "kioskhr_backend/internals/helpers"
)

var (
	ErrEmployeeNotFound     = fiber.NewError(fiber.StatusNotFound, "employee not found")
	ErrAmbiguousIdentifier  = fiber.NewError(fiber.StatusConflict, "identifier matches multiple employees; use the employee code")
	ErrEmptyIdentifier      = fiber.NewError(fiber.StatusBadRequest, "identifier is required")
	ErrEmployeeCodeTaken    = fiber.NewError(fiber.StatusConflict, "employee code already exists")
	ErrPurgeConfirmMismatch = fiber.NewError(fiber.StatusBadRequest, "confirm must equal the employee code")
	ErrNothingToUpdate      = fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	ErrInvalidReference     = fiber.NewError(fiber.StatusBadRequest, "invalid reference")
)

func mapDatabaseError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case helper.IsUniqueViolation(err):
		return ErrEmployeeCodeTaken
	case helper.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Lookup resolves a kiosk identifier. An exact employee code wins; otherwise
// the name is matched on its folded key (Unicode lower case, trimmed) and
// must be unique. Archived employees are never matched.
func Lookup(ctx context.Context, db *gorm.DB, identifier string) (*model.EmployeeModel, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return nil, ErrEmptyIdentifier
	}

	var byCode model.EmployeeModel
	err := db.WithContext(ctx).Where("employee_code = ?", id).Take(&byCode).Error
	if err == nil {
		return &byCode, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup by code: %w", err)
	}

	var byName []model.EmployeeModel
	if err := db.WithContext(ctx).
		Where("name_key = ?", model.NameKeyOf(id)).
		Limit(2).
		Find(&byName).Error; err != nil {
		return nil, fmt.Errorf("lookup by name: %w", err)
	}
	switch len(byName) {
	case 0:
		return nil, ErrEmployeeNotFound
	case 1:
		return &byName[0], nil
	default:
		return nil, ErrAmbiguousIdentifier
	}
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.EmployeeModel, error) {
	var m model.EmployeeModel
	err := db.WithContext(ctx).Take(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &m, nil
}

// List is ordered by name. q filters on name or code.
func List(ctx context.Context, db *gorm.DB, paging helper.Paging, q string, includeArchived bool) ([]model.EmployeeModel, int64, error) {
	tx := db.WithContext(ctx).Model(&model.EmployeeModel{})
	if includeArchived {
		tx = tx.Unscoped()
	}
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("name_key LIKE ? OR LOWER(employee_code) LIKE ?", like, like)
	}

	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	var rows []model.EmployeeModel
	if err := tx.Order("name ASC").Order("employee_code ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	return rows, total, nil
}

// nextEmployeeCode returns the first free EMPnnn code, archived rows included.
func nextEmployeeCode(ctx context.Context, db *gorm.DB) (string, error) {
	var total int64
	if err := db.WithContext(ctx).Unscoped().Model(&model.EmployeeModel{}).Count(&total).Error; err != nil {
		return "", err
	}
	for n := total + 1; ; n++ {
		code := fmt.Sprintf("EMP%03d", n)
		var used int64
		if err := db.WithContext(ctx).Unscoped().Model(&model.EmployeeModel{}).
			Where("employee_code = ?", code).Count(&used).Error; err != nil {
			return "", err
		}
		if used == 0 {
			return code, nil
		}
	}
}

func Create(ctx context.Context, db *gorm.DB, req dto.CreateEmployeeRequest) (*model.EmployeeModel, error) {
	m := req.ToModel()
	if m.EmployeeCode == "" {
		code, err := nextEmployeeCode(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("generate employee code: %w", err)
		}
		m.EmployeeCode = code
	}
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, mapDatabaseError("create employee", err)
	}
	log.Printf("[INFO] employee created: %s (%s)", m.EmployeeCode, m.ID)
	return &m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, req dto.UpdateEmployeeRequest) (*model.EmployeeModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}
	if err := db.WithContext(ctx).Model(m).Updates(updates).Error; err != nil {
		return nil, mapDatabaseError("update employee", err)
	}
	return Get(ctx, db, id)
}

// Archive soft-deletes the employee. Attendance history stays in place.
func Archive(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.EmployeeModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(m).Error; err != nil {
		return nil, mapDatabaseError("archive employee", err)
	}
	log.Printf("[INFO] employee archived: %s", m.EmployeeCode)
	return m, nil
}

type PurgeResult struct {
	Employee        model.EmployeeModel `json:"employee"`
	SessionsRemoved int64               `json:"sessions_removed"`
}

// Purge physically deletes an employee (active or archived) and all of its
// sessions in one transaction. confirm must equal the employee code.
func Purge(ctx context.Context, db *gorm.DB, id uuid.UUID, confirm, actor, reason string) (*PurgeResult, error) {
	var res PurgeResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.EmployeeModel
		err := tx.Unscoped().Take(&m, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		if err != nil {
			return fmt.Errorf("load employee: %w", err)
		}
		if strings.TrimSpace(confirm) != m.EmployeeCode {
			return ErrPurgeConfirmMismatch
		}

		del := tx.Where("employee_id = ?", id).Delete(&sessionModel.AttendanceSessionModel{})
		if del.Error != nil {
			return fmt.Errorf("delete sessions: %w", del.Error)
		}

		if strings.TrimSpace(reason) == "" {
			reason = "employee purged"
		}
		if _, err := auditService.Record(ctx, tx, auditService.Entry{
			SessionID:  uuid.Nil,
			EmployeeID: m.ID,
			Action:     constants.AuditEmployeePurge,
			Actor:      actor,
			Reason:     reason,
			Before: map[string]any{
				"employee":         dto.FromModel(m),
				"sessions_removed": del.RowsAffected,
			},
		}); err != nil {
			return err
		}

		if err := tx.Unscoped().Delete(&m).Error; err != nil {
			return mapDatabaseError("purge employee", err)
		}
		res = PurgeResult{Employee: m, SessionsRemoved: del.RowsAffected}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] employee purged: %s by %s, %d sessions removed", res.Employee.EmployeeCode, actor, res.SessionsRemoved)
	return &res, nil
}
