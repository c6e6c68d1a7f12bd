package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"kioskhr_backend/internals/constants"
	"kioskhr_backend/internals/databases/dbtest"
	"kioskhr_backend/internals/features/attendance/sessions/model"
	directoryService "kioskhr_backend/internals/features/employees/directory/service"
	employeeModel "kioskhr_backend/internals/features/employees/directory/model"
	helper "kioskhr_backend/internals/helpers"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
	svc := New(dbtest.Open(t))
	svc.Now = clock.Now
	return svc, clock
}

func seedEmployee(t *testing.T, db *gorm.DB, code, name string) employeeModel.EmployeeModel {
	t.Helper()
	e := employeeModel.EmployeeModel{EmployeeCode: code, Name: name, HourlyRate: 20}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed employee %s: %v", code, err)
	}
	return e
}

func countSessions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.AttendanceSessionModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestClockInOpensSession(t *testing.T) {
	svc, _ := newTestService(t)
	seedEmployee(t, svc.DB, "EMP001", "John Doe")
	loc := "  Front Desk  "

	res, err := svc.ClockIn(context.Background(), "EMP001", &loc)
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if res.Status != constants.EmployeeStatusClockedIn {
		t.Fatalf("status = %s", res.Status)
	}
	if res.Session.ClockOutAt != nil || res.Session.TotalHours != nil {
		t.Fatalf("new session must be open: %+v", res.Session)
	}
	if res.Session.ClockInLocation == nil || *res.Session.ClockInLocation != "Front Desk" {
		t.Fatalf("location not trimmed: %v", res.Session.ClockInLocation)
	}

	st, err := svc.Status(context.Background(), "john doe")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.IsClockedIn || st.OpenSession == nil || st.OpenSession.ID != res.Session.ID {
		t.Fatalf("status should report the open session: %+v", st)
	}
}

func TestClockOutComputesHours(t *testing.T) {
	svc, clock := newTestService(t)
	seedEmployee(t, svc.DB, "EMP001", "John Doe")
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, "EMP001", nil); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	clock.Set(time.Date(2024, 3, 4, 17, 30, 0, 0, time.UTC))
	res, err := svc.ClockOut(ctx, "EMP001", nil)
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if res.Session.TotalHours == nil || *res.Session.TotalHours != 8.5 {
		t.Fatalf("total hours = %v, want 8.5", res.Session.TotalHours)
	}
	if res.Status != constants.EmployeeStatusClockedOut {
		t.Fatalf("status = %s", res.Status)
	}

	var stored model.AttendanceSessionModel
	if err := svc.DB.First(&stored, "id = ?", res.Session.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ClockOutAt == nil || stored.TotalHours == nil || *stored.TotalHours != 8.5 {
		t.Fatalf("stored session not closed: %+v", stored)
	}
}

func TestClockInTwiceRejected(t *testing.T) {
	svc, clock := newTestService(t)
	seedEmployee(t, svc.DB, "EMP001", "John Doe")
	ctx := context.Background()

	first, err := svc.ClockIn(ctx, "EMP001", nil)
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	clock.Set(clock.Now().Add(time.Hour))
	if _, err := svc.ClockIn(ctx, "EMP001", nil); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Fatalf("second clock in err = %v, want ErrAlreadyClockedIn", err)
	}
	if n := countSessions(t, svc.DB); n != 1 {
		t.Fatalf("sessions = %d, want 1", n)
	}

	var open model.AttendanceSessionModel
	if err := svc.DB.First(&open, "id = ?", first.Session.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !open.ClockInAt.Equal(first.Session.ClockInAt) || open.ClockOutAt != nil {
		t.Fatalf("open session changed: %+v", open)
	}
}

func TestClockOutWithoutOpenSession(t *testing.T) {
	svc, _ := newTestService(t)
	seedEmployee(t, svc.DB, "EMP001", "John Doe")

	if _, err := svc.ClockOut(context.Background(), "EMP001", nil); !errors.Is(err, ErrNotClockedIn) {
		t.Fatalf("err = %v, want ErrNotClockedIn", err)
	}
}

func TestClockUnknownAndAmbiguousIdentifier(t *testing.T) {
	svc, _ := newTestService(t)
	seedEmployee(t, svc.DB, "EMP001", "Sam Lee")
	seedEmployee(t, svc.DB, "EMP002", "sam lee")
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, "nobody", nil); !errors.Is(err, directoryService.ErrEmployeeNotFound) {
		t.Fatalf("unknown: err = %v", err)
	}
	if _, err := svc.ClockIn(ctx, "Sam Lee", nil); !errors.Is(err, directoryService.ErrAmbiguousIdentifier) {
		t.Fatalf("ambiguous: err = %v", err)
	}
	if _, err := svc.ClockIn(ctx, "EMP002", nil); err != nil {
		t.Fatalf("code lookup should win: %v", err)
	}
	if n := countSessions(t, svc.DB); n != 1 {
		t.Fatalf("sessions = %d, want 1", n)
	}
}

// The test pool has one connection, so these clock-ins run one after another
// and the losers are turned away by the open-session check.
func TestConcurrentClockInSingleWinner(t *testing.T) {
	svc, _ := newTestService(t)
	seedEmployee(t, svc.DB, "EMP001", "John Doe")

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ClockIn(context.Background(), "EMP001", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyClockedIn):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("successful clock-ins = %d, want 1", ok)
	}
	if c := countSessions(t, svc.DB); c != 1 {
		t.Fatalf("sessions = %d, want 1", c)
	}
}

// A competing kiosk commits an open row between the open-session check and
// our insert; the partial unique index rejects ours.
func TestClockInIndexConflictMapsToAlreadyClockedIn(t *testing.T) {
	svc, _ := newTestService(t)
	emp := seedEmployee(t, svc.DB, "EMP001", "John Doe")

	injected := false
	err := svc.DB.Callback().Create().Before("gorm:create").Register("test:competing_clock_in", func(db *gorm.DB) {
		if injected || db.Statement.Schema == nil || db.Statement.Schema.Table != "attendance_sessions" {
			return
		}
		injected = true
		rival := model.AttendanceSessionModel{EmployeeID: emp.ID, ClockInAt: time.Date(2024, 3, 4, 8, 59, 0, 0, time.UTC)}
		if err := db.Session(&gorm.Session{NewDB: true}).Create(&rival).Error; err != nil {
			db.AddError(err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = svc.ClockIn(context.Background(), "EMP001", nil)
	if !injected {
		t.Fatal("competing insert never ran")
	}
	if !errors.Is(err, ErrAlreadyClockedIn) {
		t.Fatalf("err = %v, want ErrAlreadyClockedIn", err)
	}
	if n := countSessions(t, svc.DB); n != 0 {
		t.Fatalf("sessions after rollback = %d, want 0", n)
	}
}

func TestOpenSessionIndexRejectsSecondOpenRow(t *testing.T) {
	svc, _ := newTestService(t)
	emp := seedEmployee(t, svc.DB, "EMP001", "John Doe")

	first := model.AttendanceSessionModel{EmployeeID: emp.ID, ClockInAt: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
	if err := svc.DB.Create(&first).Error; err != nil {
		t.Fatalf("first: %v", err)
	}
	second := model.AttendanceSessionModel{EmployeeID: emp.ID, ClockInAt: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)}
	err := svc.DB.Create(&second).Error
	if !helper.IsUniqueViolation(err) {
		t.Fatalf("second open session err = %v, want unique violation", err)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, clock := newTestService(t)
	emp := seedEmployee(t, svc.DB, "EMP001", "John Doe")
	ctx := context.Background()

	for day := 4; day <= 6; day++ {
		clock.Set(time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC))
		if _, err := svc.ClockIn(ctx, "EMP001", nil); err != nil {
			t.Fatalf("clock in: %v", err)
		}
		clock.Set(time.Date(2024, 3, day, 17, 0, 0, 0, time.UTC))
		if _, err := svc.ClockOut(ctx, "EMP001", nil); err != nil {
			t.Fatalf("clock out: %v", err)
		}
	}

	rows, total, err := svc.History(ctx, emp.ID, helper.NewPaging(1, 2, 30, 200))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if total != 3 || len(rows) != 2 {
		t.Fatalf("total=%d rows=%d", total, len(rows))
	}
	if rows[0].ClockInAt.UTC().Day() != 6 || rows[1].ClockInAt.UTC().Day() != 5 {
		t.Fatalf("order wrong: %v, %v", rows[0].ClockInAt, rows[1].ClockInAt)
	}
}
