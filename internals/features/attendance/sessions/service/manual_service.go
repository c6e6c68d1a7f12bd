package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kioskhr_backend/internals/constants"
	auditService "kioskhr_backend/internals/features/attendance/audit/service"
	"kioskhr_backend/internals/features/attendance/sessions/dto"
	"kioskhr_backend/internals/features/attendance/sessions/model"
	directoryService "kioskhr_backend/internals/features/employees/directory/service"
	employeeModel "kioskhr_backend/internals/features/employees/directory/model"
	"kioskhr_backend/internals/helpers/dbtime"
)

type EditInput struct {
	ClockInAt        *time.Time
	ClockOutAt       *time.Time
	ClockInLocation  *string
	ClockOutLocation *string
	Reason           string
	Actor            string
}

type CreateInput struct {
	EmployeeID       uuid.UUID
	ClockInAt        time.Time
	ClockOutAt       *time.Time
	ClockInLocation  *string
	ClockOutLocation *string
	Reason           string
	Actor            string
}

type UpsertDayInput struct {
	EmployeeCode string
	Date         string
	ClockIn      string
	ClockOut     *string
	Location     *string
	Reason       string
	Actor        string
}

func requireReason(reason string) (string, error) {
	r := strings.TrimSpace(reason)
	if r == "" {
		return "", ErrReasonRequired
	}
	return r, nil
}

// applyTimes validates the resulting interval and recomputes total hours.
func applyTimes(m *model.AttendanceSessionModel) error {
	m.ClockInAt = m.ClockInAt.UTC()
	if m.IsOpen() {
		m.TotalHours = nil
		return nil
	}
	out := m.ClockOutAt.UTC()
	if !out.After(m.ClockInAt) {
		return ErrInvalidTimeRange
	}
	h := model.HoursBetween(m.ClockInAt, out)
	m.ClockOutAt = &out
	m.TotalHours = &h
	return nil
}

func stampEdit(m *model.AttendanceSessionModel, actor, reason string, at time.Time) {
	m.IsManuallyEdited = true
	m.EditedBy = &actor
	m.EditedAt = &at
	m.EditReason = &reason
}

func (s *Service) loadForUpdate(tx *gorm.DB, id uuid.UUID) (*model.AttendanceSessionModel, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m model.AttendanceSessionModel
	err := q.Take(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &m, nil
}

// Edit overrides times and locations of one session and appends a MANUAL_EDIT event.
func (s *Service) Edit(ctx context.Context, sessionID uuid.UUID, in EditInput) (*model.AttendanceSessionModel, error) {
	reason, err := requireReason(in.Reason)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var out model.AttendanceSessionModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.loadForUpdate(tx, sessionID)
		if err != nil {
			return err
		}
		before := dto.SnapshotOf(*m)

		if in.ClockInAt != nil {
			m.ClockInAt = *in.ClockInAt
		}
		if in.ClockOutAt != nil {
			t := *in.ClockOutAt
			m.ClockOutAt = &t
		}
		if in.ClockInLocation != nil {
			m.ClockInLocation = cleanLocation(in.ClockInLocation)
		}
		if in.ClockOutLocation != nil {
			m.ClockOutLocation = cleanLocation(in.ClockOutLocation)
		}
		if err := applyTimes(m); err != nil {
			return err
		}
		stampEdit(m, in.Actor, reason, now)

		if err := tx.Save(m).Error; err != nil {
			return mapDatabaseError("save session", err, ErrOpenSessionExists)
		}
		if _, err := auditService.Record(ctx, tx, auditService.Entry{
			SessionID:  m.ID,
			EmployeeID: m.EmployeeID,
			Action:     constants.AuditManualEdit,
			Actor:      in.Actor,
			Reason:     reason,
			Before:     before,
			After:      dto.SnapshotOf(*m),
		}); err != nil {
			return err
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[ATTENDANCE] session %s edited by %s", out.ID, in.Actor)
	return &out, nil
}

// Create inserts a session on behalf of an employee. Overlap with closed
// sessions is allowed; a second open session is not.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.AttendanceSessionModel, error) {
	reason, err := requireReason(in.Reason)
	if err != nil {
		return nil, err
	}
	if in.ClockInAt.IsZero() {
		return nil, ErrInvalidTimeRange
	}
	now := s.now()

	var out model.AttendanceSessionModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp employeeModel.EmployeeModel
		err := tx.Select("id").Take(&emp, "id = ?", in.EmployeeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return directoryService.ErrEmployeeNotFound
		}
		if err != nil {
			return fmt.Errorf("load employee: %w", err)
		}

		m := model.AttendanceSessionModel{
			EmployeeID:       emp.ID,
			ClockInAt:        in.ClockInAt,
			ClockOutAt:       in.ClockOutAt,
			Location:         cleanLocation(in.ClockInLocation),
			ClockInLocation:  cleanLocation(in.ClockInLocation),
			ClockOutLocation: cleanLocation(in.ClockOutLocation),
		}
		if err := applyTimes(&m); err != nil {
			return err
		}
		stampEdit(&m, in.Actor, reason, now)

		if err := tx.Create(&m).Error; err != nil {
			return mapDatabaseError("insert session", err, ErrOpenSessionExists)
		}
		if _, err := auditService.Record(ctx, tx, auditService.Entry{
			SessionID:  m.ID,
			EmployeeID: m.EmployeeID,
			Action:     constants.AuditManualCreate,
			Actor:      in.Actor,
			Reason:     reason,
			After:      dto.SnapshotOf(m),
		}); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[ATTENDANCE] session %s created manually by %s", out.ID, in.Actor)
	return &out, nil
}

// UpsertDay sets the shift of one business day: the earliest session that
// starts on that day is updated, or a new one is created.
func (s *Service) UpsertDay(ctx context.Context, in UpsertDayInput) (*model.AttendanceSessionModel, bool, error) {
	reason, err := requireReason(in.Reason)
	if err != nil {
		return nil, false, err
	}
	loc := dbtime.Loc()
	day, err := dbtime.ParseDate(in.Date, loc)
	if err != nil {
		return nil, false, ErrInvalidDateTime
	}
	inTod, err := dbtime.Parse(in.ClockIn)
	if err != nil {
		return nil, false, ErrInvalidDateTime
	}
	clockIn := dbtime.Combine(day, inTod, loc)

	var clockOut *time.Time
	if in.ClockOut != nil && strings.TrimSpace(*in.ClockOut) != "" {
		outTod, err := dbtime.Parse(*in.ClockOut)
		if err != nil {
			return nil, false, ErrInvalidDateTime
		}
		t := dbtime.Combine(day, outTod, loc)
		if !t.After(clockIn) {
			return nil, false, ErrInvalidTimeRange
		}
		clockOut = &t
	}
	location := cleanLocation(in.Location)
	now := s.now()
	dayStart, dayEnd := dbtime.DayBounds(day, loc)

	var (
		out     model.AttendanceSessionModel
		created bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp employeeModel.EmployeeModel
		err := tx.Where("employee_code = ?", strings.TrimSpace(in.EmployeeCode)).Take(&emp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return directoryService.ErrEmployeeNotFound
		}
		if err != nil {
			return fmt.Errorf("load employee: %w", err)
		}

		var existing model.AttendanceSessionModel
		err = tx.Where("employee_id = ? AND clock_in_at >= ? AND clock_in_at < ?", emp.ID, dayStart.UTC(), dayEnd.UTC()).
			Order("clock_in_at ASC").
			Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			existing = model.AttendanceSessionModel{EmployeeID: emp.ID}
		case err != nil:
			return fmt.Errorf("find day session: %w", err)
		}

		var before any
		if !created {
			before = dto.SnapshotOf(existing)
		}

		existing.ClockInAt = clockIn
		existing.ClockOutAt = clockOut
		existing.Location = location
		if location != nil {
			existing.ClockInLocation = location
			existing.ClockOutLocation = location
		}
		if err := applyTimes(&existing); err != nil {
			return err
		}
		stampEdit(&existing, in.Actor, reason, now)

		if created {
			err = tx.Create(&existing).Error
		} else {
			err = tx.Save(&existing).Error
		}
		if err != nil {
			return mapDatabaseError("upsert day session", err, ErrOpenSessionExists)
		}

		if _, err := auditService.Record(ctx, tx, auditService.Entry{
			SessionID:  existing.ID,
			EmployeeID: existing.EmployeeID,
			Action:     constants.AuditDayUpsert,
			Actor:      in.Actor,
			Reason:     reason,
			Before:     before,
			After:      dto.SnapshotOf(existing),
		}); err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, created, nil
}

// Delete removes one session. The DELETE audit event keeps its last snapshot.
func (s *Service) Delete(ctx context.Context, sessionID uuid.UUID, actor, reason string) (*model.AttendanceSessionModel, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "deleted by HR"
	}
	var out model.AttendanceSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.loadForUpdate(tx, sessionID)
		if err != nil {
			return err
		}
		if err := tx.Delete(m).Error; err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if _, err := auditService.Record(ctx, tx, auditService.Entry{
			SessionID:  m.ID,
			EmployeeID: m.EmployeeID,
			Action:     constants.AuditDelete,
			Actor:      actor,
			Reason:     reason,
			Before:     dto.SnapshotOf(*m),
		}); err != nil {
			return err
		}
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[ATTENDANCE] session %s deleted by %s", out.ID, actor)
	return &out, nil
}

// AuditTrail returns the latest-edit stamp plus every event for the session.
// Deleted sessions still return their events.
func (s *Service) AuditTrail(ctx context.Context, sessionID uuid.UUID) (*dto.AuditTrailResponse, error) {
	events, err := auditService.ListBySession(ctx, s.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	resp := &dto.AuditTrailResponse{
		SessionID: sessionID,
		Events:    dto.FromAuditEvents(events),
	}

	var m model.AttendanceSessionModel
	err = s.DB.WithContext(ctx).Take(&m, "id = ?", sessionID).Error
	switch {
	case err == nil:
		r := dto.FromModel(m)
		resp.Session = &r
		resp.LatestEdit = dto.LatestEditOf(m)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if len(events) == 0 {
			return nil, ErrSessionNotFound
		}
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}
	return resp, nil
}

// EmployeeAudit returns the newest audit events touching one employee,
// purge events included.
func (s *Service) EmployeeAudit(ctx context.Context, employeeID uuid.UUID, limit int) ([]dto.AuditEventResponse, error) {
	events, err := auditService.ListByEmployee(ctx, s.DB, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list employee audit events: %w", err)
	}
	return dto.FromAuditEvents(events), nil
}
