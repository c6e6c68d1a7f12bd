package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"kioskhr_backend/internals/constants"
	"kioskhr_backend/internals/features/reports/dto"
	"kioskhr_backend/internals/features/reports/repository"
)

var (
	empA = repository.EmployeeRow{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), EmployeeCode: "EMP001", Name: "Ada", HourlyRate: 20}
	empB = repository.EmployeeRow{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), EmployeeCode: "EMP002", Name: "Bob", HourlyRate: 15.5}
)

func at(day, hour, min int) time.Time {
	return time.Date(2024, 3, day, hour, min, 0, 0, time.UTC)
}

func empSummary() dto.EmployeeSummary {
	return dto.EmployeeSummary{ID: empA.ID, EmployeeCode: empA.EmployeeCode, Name: empA.Name, HourlyRate: empA.HourlyRate, MaxHoursPerWeek: 40}
}

func closed(e repository.EmployeeRow, in, out time.Time) repository.SessionRow {
	h := out.Sub(in).Hours()
	return repository.SessionRow{
		ID: uuid.New(), EmployeeID: e.ID, EmployeeCode: e.EmployeeCode, Name: e.Name, HourlyRate: e.HourlyRate,
		ClockInAt: in, ClockOutAt: &out, TotalHours: &h,
	}
}

func open(e repository.EmployeeRow, in time.Time) repository.SessionRow {
	return repository.SessionRow{
		ID: uuid.New(), EmployeeID: e.ID, EmployeeCode: e.EmployeeCode, Name: e.Name, HourlyRate: e.HourlyRate,
		ClockInAt: in,
	}
}

func TestDailyDetailsStatuses(t *testing.T) {
	employees := []repository.EmployeeRow{empA, empB}

	// absent
	got := BuildDailyDetails(employees, nil)
	if got[0].Status != constants.DayStatusAbsent || got[0].TotalHours != 0 || got[0].ClockIn != nil {
		t.Fatalf("absent row = %+v", got[0])
	}

	// clocked in, no clock-out yet
	got = BuildDailyDetails(employees, []repository.SessionRow{open(empA, at(4, 9, 0))})
	if got[0].Status != constants.DayStatusClockedIn || got[0].ClockOut != nil {
		t.Fatalf("open row = %+v", got[0])
	}
	if got[1].Status != constants.DayStatusAbsent {
		t.Fatalf("other employee = %+v", got[1])
	}

	// completed
	got = BuildDailyDetails(employees, []repository.SessionRow{closed(empA, at(4, 9, 0), at(4, 17, 30))})
	if got[0].Status != constants.DayStatusCompleted || got[0].TotalHours != 8.5 {
		t.Fatalf("completed row = %+v", got[0])
	}
}

func TestDailyDetailsSplitShift(t *testing.T) {
	front, back := "Front", "Back"
	morning := closed(empA, at(4, 8, 0), at(4, 12, 0))
	morning.ClockInLocation, morning.ClockOutLocation = &front, &front
	afternoon := closed(empA, at(4, 13, 0), at(4, 17, 15))
	afternoon.ClockInLocation, afternoon.ClockOutLocation = &back, &back

	got := BuildDailyDetails([]repository.EmployeeRow{empA}, []repository.SessionRow{afternoon, morning})[0]
	if !got.ClockIn.Equal(at(4, 8, 0)) || !got.ClockOut.Equal(at(4, 17, 15)) {
		t.Fatalf("span = %v - %v", got.ClockIn, got.ClockOut)
	}
	if got.TotalHours != 8.25 {
		t.Fatalf("total = %v", got.TotalHours)
	}
	if !reflect.DeepEqual(got.Locations, []string{"Front", "Back"}) {
		t.Fatalf("locations = %v", got.Locations)
	}
}

func TestDailyDetailsLegacyLocationOnlyWhenNoSplit(t *testing.T) {
	legacy, split := "Warehouse", "Dock"
	s := closed(empA, at(4, 8, 0), at(4, 12, 0))
	s.Location = &legacy
	got := BuildDailyDetails([]repository.EmployeeRow{empA}, []repository.SessionRow{s})[0]
	if !reflect.DeepEqual(got.Locations, []string{"Warehouse"}) {
		t.Fatalf("legacy locations = %v", got.Locations)
	}

	s.ClockInLocation = &split
	got = BuildDailyDetails([]repository.EmployeeRow{empA}, []repository.SessionRow{s})[0]
	if !reflect.DeepEqual(got.Locations, []string{"Dock"}) {
		t.Fatalf("split locations = %v", got.Locations)
	}
}

func TestBuildDashboardCountsAndIdempotence(t *testing.T) {
	day := []repository.SessionRow{
		closed(empA, at(4, 8, 0), at(4, 12, 0)),
		open(empA, at(4, 13, 0)),
	}
	in := DashboardInput{
		Target:         at(4, 0, 0),
		Loc:            time.UTC,
		TotalEmployees: 2,
		Employees:      []repository.EmployeeRow{empA, empB},
		DaySessions:    day,
		TrendSessions:  day,
		RecentSessions: day,
		TrendDays:      14,
		RecentLimit:    5,
	}
	a := BuildDashboard(in)
	if a.Present != 1 || a.Absent != 1 || a.ActiveClockIns != 1 {
		t.Fatalf("counts = present %d absent %d active %d", a.Present, a.Absent, a.ActiveClockIns)
	}
	if a.Date != "2024-03-04" || len(a.ChartData) != 14 || a.ChartData[13].Present != 1 {
		t.Fatalf("trend = %s %+v", a.Date, a.ChartData)
	}
	if len(a.RecentActivity) != 3 || a.RecentActivity[0].Type != constants.EventClockIn || !a.RecentActivity[0].At.Equal(at(4, 13, 0)) {
		t.Fatalf("recent = %+v", a.RecentActivity)
	}

	b := BuildDashboard(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("dashboard is not deterministic for identical input")
	}
}

func TestBuildTrendWindow(t *testing.T) {
	sessions := []repository.SessionRow{
		closed(empA, at(1, 9, 0), at(1, 17, 0)),
		closed(empB, at(1, 10, 0), at(1, 18, 0)),
		closed(empA, at(3, 9, 0), at(3, 17, 0)),
		closed(empA, at(3, 18, 0), at(3, 19, 0)),
	}
	got := BuildTrend(sessions, at(3, 12, 0), 3, time.UTC)
	want := []int{2, 0, 1}
	if len(got) != 3 {
		t.Fatalf("points = %d", len(got))
	}
	for i, p := range got {
		if p.Present != want[i] {
			t.Fatalf("point %d (%s) = %d, want %d", i, p.Date, p.Present, want[i])
		}
	}
	if got[0].Date != "2024-03-01" || got[2].Date != "2024-03-03" {
		t.Fatalf("dates = %s..%s", got[0].Date, got[2].Date)
	}
}

func TestRecentActivityLimit(t *testing.T) {
	sessions := []repository.SessionRow{
		closed(empA, at(1, 9, 0), at(1, 17, 0)),
		closed(empB, at(2, 9, 0), at(2, 17, 0)),
		open(empA, at(3, 9, 0)),
	}
	got := BuildRecentActivity(sessions, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Type != constants.EventClockIn || !got[0].At.Equal(at(3, 9, 0)) {
		t.Fatalf("newest = %+v", got[0])
	}
	if got[1].Type != constants.EventClockOut || got[1].EmployeeID != empB.ID {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestEmployeeStats(t *testing.T) {
	now := at(20, 12, 0)
	// newest first
	sessions := []repository.SessionRow{
		open(empA, at(20, 9, 0)),
		closed(empA, at(19, 13, 0), at(19, 15, 0)),
		closed(empA, at(19, 8, 0), at(19, 12, 0)),
		closed(empA, at(10, 9, 0), at(10, 17, 0)),
		closed(empA, at(1, 9, 0), at(1, 17, 0)),
	}
	got := BuildEmployeeStats(empSummary(), sessions, now, time.UTC)

	if got.Stats.Status != constants.EmployeeStatusClockedIn {
		t.Fatalf("status = %s", got.Stats.Status)
	}
	// 14-day window starts Mar 6: sessions on 10 and 19
	if got.Stats.TotalBiweeklyHours != 14 || got.Stats.TotalShifts != 3 {
		t.Fatalf("biweekly = %v shifts = %d", got.Stats.TotalBiweeklyHours, got.Stats.TotalShifts)
	}
	if got.Stats.AvgHoursPerShift != 4.67 {
		t.Fatalf("avg = %v", got.Stats.AvgHoursPerShift)
	}
	if got.Stats.TotalMonthlyHours != 22 {
		t.Fatalf("monthly = %v", got.Stats.TotalMonthlyHours)
	}
	if len(got.History) != 5 || len(got.ChartData) != StatsTrendDays {
		t.Fatalf("history=%d chart=%d", len(got.History), len(got.ChartData))
	}

	// the chart keeps only the first session seen for a date
	var mar19 float64
	for _, p := range got.ChartData {
		if p.Date == "2024-03-19" {
			mar19 = p.Hours
		}
	}
	if mar19 != 2 {
		t.Fatalf("Mar 19 chart hours = %v, want 2", mar19)
	}
}

func TestPayrollWindowsEndAtWeekEnd(t *testing.T) {
	// Wednesday 2024-03-13; the week runs Sun 10th to Sat 16th
	got := PayrollWindows(at(13, 10, 0), time.UTC, 4)
	if len(got) != 4 {
		t.Fatalf("windows = %d", len(got))
	}
	if !got[0].End.Equal(at(17, 0, 0)) || !got[0].Start.Equal(at(3, 0, 0)) {
		t.Fatalf("newest window = %v - %v", got[0].Start, got[0].End)
	}
	for i := 1; i < len(got); i++ {
		if !got[i].End.Equal(got[i-1].Start) {
			t.Fatalf("window %d not contiguous", i)
		}
	}
	if n := len(PayrollWindows(at(13, 10, 0), time.UTC, 50)); n != MaxPayrollPeriods {
		t.Fatalf("cap = %d", n)
	}
}

func TestBuildPayroll(t *testing.T) {
	windows := PayrollWindows(at(13, 10, 0), time.UTC, 2)
	sessions := []repository.SessionRow{
		closed(empB, at(4, 9, 0), at(4, 17, 20)),
		closed(empA, at(5, 9, 0), at(5, 17, 0)),
		closed(empA, at(6, 9, 0), at(6, 13, 0)),
		open(empA, at(13, 9, 0)),
	}
	got := BuildPayroll(windows, sessions)
	if len(got) != 2 {
		t.Fatalf("periods = %d", len(got))
	}

	cur := got[0]
	if cur.Start != "2024-03-03" || cur.End != "2024-03-16" || cur.Period != "Mar 03 - Mar 16, 2024" {
		t.Fatalf("period = %+v", cur)
	}
	if len(cur.Employees) != 2 || cur.Employees[0].Name != "Ada" {
		t.Fatalf("lines = %+v", cur.Employees)
	}
	if cur.Employees[0].Hours != 12 || cur.Employees[0].Amount != 240 {
		t.Fatalf("ada = %+v", cur.Employees[0])
	}
	// 8h20m at 15.5
	if cur.Employees[1].Hours != 8.33 || cur.Employees[1].Amount != 129.17 {
		t.Fatalf("bob = %+v", cur.Employees[1])
	}
	if cur.TotalAmount != 369.17 || cur.TotalHours != 20.33 {
		t.Fatalf("totals = %v / %v", cur.TotalHours, cur.TotalAmount)
	}

	prev := got[1]
	if len(prev.Employees) != 0 || prev.TotalAmount != 0 {
		t.Fatalf("empty period should be kept with no lines: %+v", prev)
	}
}

func TestWeeklyHistory(t *testing.T) {
	sessions := []repository.SessionRow{
		closed(empA, at(4, 9, 0), at(4, 17, 0)),  // week of Mar 03
		closed(empB, at(9, 9, 0), at(9, 13, 30)), // Saturday, same week
		closed(empA, at(10, 9, 0), at(10, 10, 0)),
	}
	got := BuildWeeklyHistory(sessions, time.UTC)
	if len(got) != 2 {
		t.Fatalf("buckets = %+v", got)
	}
	if got[0].Week != "2024-03-03" || got[0].Hours != 12.5 || got[0].Count != 2 {
		t.Fatalf("first week = %+v", got[0])
	}
	if got[1].Week != "2024-03-10" || got[1].Count != 1 {
		t.Fatalf("second week = %+v", got[1])
	}
}
