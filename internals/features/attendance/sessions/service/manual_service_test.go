package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kioskhr_backend/internals/configs"
	"kioskhr_backend/internals/constants"
	auditModel "kioskhr_backend/internals/features/attendance/audit/model"
	"kioskhr_backend/internals/features/attendance/sessions/model"
)

const hrActor = "hr@company.com"

func closedSession(t *testing.T, svc *Service, code string, in, out time.Time) model.AttendanceSessionModel {
	t.Helper()
	emp := seedEmployee(t, svc.DB, code, "Worker "+code)
	h := model.HoursBetween(in, out)
	m := model.AttendanceSessionModel{EmployeeID: emp.ID, ClockInAt: in, ClockOutAt: &out, TotalHours: &h}
	if err := svc.DB.Create(&m).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return m
}

func TestEditRecomputesHoursAndStamps(t *testing.T) {
	svc, _ := newTestService(t)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	sess := closedSession(t, svc, "EMP001", day.Add(9*time.Hour), day.Add(17*time.Hour))

	newIn := day.Add(8 * time.Hour)
	out, err := svc.Edit(context.Background(), sess.ID, EditInput{
		ClockInAt: &newIn,
		Reason:    "forgot to log in on time",
		Actor:     hrActor,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if out.TotalHours == nil || *out.TotalHours != 9.0 {
		t.Fatalf("total hours = %v, want 9", out.TotalHours)
	}
	if !out.IsManuallyEdited || out.EditedBy == nil || *out.EditedBy != hrActor {
		t.Fatalf("edit stamp missing: %+v", out)
	}
	if out.EditReason == nil || *out.EditReason != "forgot to log in on time" {
		t.Fatalf("reason = %v", out.EditReason)
	}

	var events []auditModel.AttendanceAuditEventModel
	if err := svc.DB.Where("session_id = ?", sess.ID).Find(&events).Error; err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].Action != constants.AuditManualEdit || events[0].Actor != hrActor {
		t.Fatalf("audit events = %+v", events)
	}
	if len(events[0].Before) == 0 || len(events[0].After) == 0 || events[0].Patch == "" {
		t.Fatalf("audit snapshots incomplete: %+v", events[0])
	}
}

func TestEditRejectsInvertedRangeAndMissingReason(t *testing.T) {
	svc, _ := newTestService(t)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	sess := closedSession(t, svc, "EMP001", day.Add(9*time.Hour), day.Add(17*time.Hour))
	ctx := context.Background()

	badOut := day.Add(9 * time.Hour)
	if _, err := svc.Edit(ctx, sess.ID, EditInput{ClockOutAt: &badOut, Reason: "typo", Actor: hrActor}); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("equal in/out err = %v, want ErrInvalidTimeRange", err)
	}
	if _, err := svc.Edit(ctx, sess.ID, EditInput{Reason: "   ", Actor: hrActor}); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("blank reason err = %v", err)
	}

	var events int64
	svc.DB.Model(&auditModel.AttendanceAuditEventModel{}).Count(&events)
	if events != 0 {
		t.Fatalf("rejected edits must not be audited, got %d events", events)
	}
	var stored model.AttendanceSessionModel
	svc.DB.First(&stored, "id = ?", sess.ID)
	if stored.IsManuallyEdited || *stored.TotalHours != 8 {
		t.Fatalf("session changed after rejected edit: %+v", stored)
	}
}

func TestManualCreateThenAuditTrail(t *testing.T) {
	svc, _ := newTestService(t)
	emp := seedEmployee(t, svc.DB, "EMP001", "John Doe")
	ctx := context.Background()

	in := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := in.Add(7*time.Hour + 45*time.Minute)
	created, err := svc.Create(ctx, CreateInput{
		EmployeeID: emp.ID,
		ClockInAt:  in,
		ClockOutAt: &out,
		Reason:     "kiosk was offline",
		Actor:      hrActor,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TotalHours == nil || *created.TotalHours != 7.75 {
		t.Fatalf("total hours = %v", created.TotalHours)
	}

	newOut := in.Add(8 * time.Hour)
	if _, err := svc.Edit(ctx, created.ID, EditInput{ClockOutAt: &newOut, Reason: "left later", Actor: hrActor}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	trail, err := svc.AuditTrail(ctx, created.ID)
	if err != nil {
		t.Fatalf("audit trail: %v", err)
	}
	if len(trail.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(trail.Events))
	}
	if trail.Events[0].Action != constants.AuditManualCreate || trail.Events[1].Action != constants.AuditManualEdit {
		t.Fatalf("event order = %s, %s", trail.Events[0].Action, trail.Events[1].Action)
	}
	if trail.LatestEdit == nil || trail.LatestEdit.EditReason == nil || *trail.LatestEdit.EditReason != "left later" {
		t.Fatalf("latest edit = %+v", trail.LatestEdit)
	}
}

func TestManualCreateSecondOpenSessionConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	emp := seedEmployee(t, svc.DB, "EMP001", "John Doe")
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, "EMP001", nil); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	_, err := svc.Create(ctx, CreateInput{
		EmployeeID: emp.ID,
		ClockInAt:  time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC),
		Reason:     "backfill",
		Actor:      hrActor,
	})
	if !errors.Is(err, ErrOpenSessionExists) {
		t.Fatalf("err = %v, want ErrOpenSessionExists", err)
	}
	var events int64
	svc.DB.Model(&auditModel.AttendanceAuditEventModel{}).Count(&events)
	if events != 0 {
		t.Fatalf("failed create left %d audit events", events)
	}
}

func TestUpsertDayCreatesThenUpdates(t *testing.T) {
	prev := configs.BusinessLocation
	configs.BusinessLocation = time.FixedZone("UTC+7", 7*3600)
	t.Cleanup(func() { configs.BusinessLocation = prev })

	svc, _ := newTestService(t)
	seedEmployee(t, svc.DB, "EMP001", "John Doe")
	ctx := context.Background()

	out := "17:00"
	first, created, err := svc.UpsertDay(ctx, UpsertDayInput{
		EmployeeCode: "EMP001",
		Date:         "2024-03-04",
		ClockIn:      "09:00",
		ClockOut:     &out,
		Reason:       "paper timesheet",
		Actor:        hrActor,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created {
		t.Fatal("first upsert should create")
	}
	if want := time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC); !first.ClockInAt.Equal(want) {
		t.Fatalf("clock in = %v, want %v", first.ClockInAt, want)
	}

	out = "18:30"
	second, created, err := svc.UpsertDay(ctx, UpsertDayInput{
		EmployeeCode: "EMP001",
		Date:         "2024-03-04",
		ClockIn:      "08:30",
		ClockOut:     &out,
		Reason:       "corrected timesheet",
		Actor:        hrActor,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created || second.ID != first.ID {
		t.Fatalf("second upsert should update %s, got %s (created=%v)", first.ID, second.ID, created)
	}
	if second.TotalHours == nil || *second.TotalHours != 10 {
		t.Fatalf("total hours = %v, want 10", second.TotalHours)
	}
	if n := countSessions(t, svc.DB); n != 1 {
		t.Fatalf("sessions = %d", n)
	}

	bad := "08:00"
	if _, _, err := svc.UpsertDay(ctx, UpsertDayInput{
		EmployeeCode: "EMP001", Date: "2024-03-04", ClockIn: "09:00", ClockOut: &bad, Reason: "x", Actor: hrActor,
	}); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("inverted range err = %v", err)
	}
	if _, _, err := svc.UpsertDay(ctx, UpsertDayInput{
		EmployeeCode: "EMP001", Date: "04/03/2024", ClockIn: "09:00", Reason: "x", Actor: hrActor,
	}); !errors.Is(err, ErrInvalidDateTime) {
		t.Fatalf("bad date err = %v", err)
	}
}

func TestDeleteKeepsAuditTrail(t *testing.T) {
	svc, _ := newTestService(t)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	sess := closedSession(t, svc, "EMP001", day.Add(9*time.Hour), day.Add(17*time.Hour))
	ctx := context.Background()

	if _, err := svc.Delete(ctx, sess.ID, hrActor, ""); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := countSessions(t, svc.DB); n != 0 {
		t.Fatalf("sessions = %d after delete", n)
	}

	trail, err := svc.AuditTrail(ctx, sess.ID)
	if err != nil {
		t.Fatalf("audit trail after delete: %v", err)
	}
	if trail.Session != nil || len(trail.Events) != 1 || trail.Events[0].Action != constants.AuditDelete {
		t.Fatalf("trail = %+v", trail)
	}

	if _, err := svc.Delete(ctx, sess.ID, hrActor, "again"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second delete err = %v", err)
	}

	feed, err := svc.EmployeeAudit(ctx, sess.EmployeeID, 10)
	if err != nil || len(feed) != 1 {
		t.Fatalf("employee audit = %v, %v", feed, err)
	}
}
