package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kioskhr_backend/internals/features/attendance/audit/model"
)

// Entry describes one manual change. Before is nil for creates, After is nil for deletes.
type Entry struct {
	SessionID  uuid.UUID
	EmployeeID uuid.UUID
	Action     string
	Actor      string
	Reason     string
	Before     any
	After      any
}

func snapshot(v any) (datatypes.JSON, string, error) {
	if v == nil {
		return nil, "", nil
	}
	raw, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	pretty, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return datatypes.JSON(raw), string(pretty) + "\n", nil
}

// Patch renders a unified-style text patch between two snapshots.
func Patch(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(before, after))
}

// Record appends an audit event. Pass the surrounding transaction so the
// event commits or rolls back with the change it describes.
func Record(ctx context.Context, tx *gorm.DB, e Entry) (*model.AttendanceAuditEventModel, error) {
	actor := strings.TrimSpace(e.Actor)
	if actor == "" {
		return nil, fmt.Errorf("audit: actor is required")
	}
	before, beforeText, err := snapshot(e.Before)
	if err != nil {
		return nil, fmt.Errorf("audit: before snapshot: %w", err)
	}
	after, afterText, err := snapshot(e.After)
	if err != nil {
		return nil, fmt.Errorf("audit: after snapshot: %w", err)
	}

	ev := model.AttendanceAuditEventModel{
		SessionID:  e.SessionID,
		EmployeeID: e.EmployeeID,
		Action:     e.Action,
		Actor:      actor,
		Reason:     strings.TrimSpace(e.Reason),
		Before:     before,
		After:      after,
		Patch:      Patch(beforeText, afterText),
	}
	if err := tx.WithContext(ctx).Create(&ev).Error; err != nil {
		return nil, fmt.Errorf("audit: insert: %w", err)
	}
	return &ev, nil
}

// ListBySession returns the trail of one session, oldest first.
func ListBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]model.AttendanceAuditEventModel, error) {
	var rows []model.AttendanceAuditEventModel
	err := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListByEmployee returns the newest events for an employee.
func ListByEmployee(ctx context.Context, db *gorm.DB, employeeID uuid.UUID, limit int) ([]model.AttendanceAuditEventModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []model.AttendanceAuditEventModel
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
