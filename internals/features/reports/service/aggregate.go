package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"kioskhr_backend/internals/constants"
	"kioskhr_backend/internals/features/reports/dto"
	"kioskhr_backend/internals/features/reports/repository"
	"kioskhr_backend/internals/helpers/dbtime"
)

const (
	StatsWindowDays   = 14
	StatsTrendDays    = 30
	StatsHistoryLimit = 90
	PayrollPeriodDays = 14
	MaxPayrollPeriods = 12
	WeeklyHistorySpan = 52
	RecentSessionScan = 50
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func hoursOf(s repository.SessionRow) float64 {
	if s.TotalHours == nil {
		return 0
	}
	return *s.TotalHours
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

/* ===================== Dashboard ===================== */

// CountPresent counts distinct employees among the sessions.
func CountPresent(sessions []repository.SessionRow) int {
	seen := make(map[uuid.UUID]struct{}, len(sessions))
	for _, s := range sessions {
		seen[s.EmployeeID] = struct{}{}
	}
	return len(seen)
}

func CountOpen(sessions []repository.SessionRow) int {
	n := 0
	for _, s := range sessions {
		if s.ClockOutAt == nil {
			n++
		}
	}
	return n
}

// BuildDailyDetails folds one day's sessions into one row per employee.
// Employees come in display order; sessions may be unordered.
func BuildDailyDetails(employees []repository.EmployeeRow, daySessions []repository.SessionRow) []dto.DailyDetail {
	byEmp := make(map[uuid.UUID][]repository.SessionRow)
	for _, s := range daySessions {
		byEmp[s.EmployeeID] = append(byEmp[s.EmployeeID], s)
	}

	out := make([]dto.DailyDetail, 0, len(employees))
	for _, e := range employees {
		d := dto.DailyDetail{
			EmployeeID:   e.ID,
			EmployeeCode: e.EmployeeCode,
			Name:         e.Name,
			Status:       constants.DayStatusAbsent,
			Locations:    []string{},
		}
		list := byEmp[e.ID]
		if len(list) == 0 {
			out = append(out, d)
			continue
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].ClockInAt.Before(list[j].ClockInAt) })

		first := list[0]
		d.ClockIn = utcPtr(&first.ClockInAt)
		d.ClockInLocation = first.ClockInLocation

		open := false
		var lastOut *repository.SessionRow
		total := 0.0
		seenLoc := map[string]struct{}{}
		addLoc := func(p *string) {
			if p == nil || *p == "" {
				return
			}
			if _, ok := seenLoc[*p]; ok {
				return
			}
			seenLoc[*p] = struct{}{}
			d.Locations = append(d.Locations, *p)
		}

		for i := range list {
			s := list[i]
			total += hoursOf(s)
			if s.ClockOutAt == nil {
				open = true
			} else if lastOut == nil || s.ClockOutAt.After(*lastOut.ClockOutAt) {
				lastOut = &list[i]
			}
			addLoc(s.ClockInLocation)
			addLoc(s.ClockOutLocation)
			if s.ClockInLocation == nil && s.ClockOutLocation == nil {
				addLoc(s.Location)
			}
		}

		d.TotalHours = round2(total)
		if open {
			d.Status = constants.DayStatusClockedIn
		} else {
			d.Status = constants.DayStatusCompleted
			if lastOut != nil {
				d.ClockOut = utcPtr(lastOut.ClockOutAt)
				d.ClockOutLocation = lastOut.ClockOutLocation
			}
		}
		out = append(out, d)
	}
	return out
}

// BuildTrend returns one point per business day for the days ending on endDay.
func BuildTrend(sessions []repository.SessionRow, endDay time.Time, days int, loc *time.Location) []dto.TrendPoint {
	if days <= 0 {
		return []dto.TrendPoint{}
	}
	last := dbtime.StartOfDay(endDay, loc)
	out := make([]dto.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := last.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		seen := map[uuid.UUID]struct{}{}
		for _, s := range sessions {
			if inRange(s.ClockInAt, start, end) {
				seen[s.EmployeeID] = struct{}{}
			}
		}
		out = append(out, dto.TrendPoint{Date: start.Format(dbtime.DateLayout), Present: len(seen)})
	}
	return out
}

// BuildRecentActivity expands sessions into clock events, newest first.
func BuildRecentActivity(sessions []repository.SessionRow, limit int) []dto.ActivityEvent {
	events := make([]dto.ActivityEvent, 0, len(sessions)*2)
	for _, s := range sessions {
		events = append(events, dto.ActivityEvent{
			SessionID:    s.ID,
			EmployeeID:   s.EmployeeID,
			EmployeeCode: s.EmployeeCode,
			Name:         s.Name,
			Type:         constants.EventClockIn,
			At:           s.ClockInAt.UTC(),
			Location:     s.ClockInLocation,
		})
		if s.ClockOutAt != nil {
			events = append(events, dto.ActivityEvent{
				SessionID:    s.ID,
				EmployeeID:   s.EmployeeID,
				EmployeeCode: s.EmployeeCode,
				Name:         s.Name,
				Type:         constants.EventClockOut,
				At:           s.ClockOutAt.UTC(),
				Location:     s.ClockOutLocation,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].At.After(events[j].At) })
	if limit >= 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

type DashboardInput struct {
	Target         time.Time
	Loc            *time.Location
	TotalEmployees int
	Employees      []repository.EmployeeRow
	DaySessions    []repository.SessionRow
	TrendSessions  []repository.SessionRow
	RecentSessions []repository.SessionRow
	TrendDays      int
	RecentLimit    int
}

func BuildDashboard(in DashboardInput) dto.Dashboard {
	present := CountPresent(in.DaySessions)
	absent := in.TotalEmployees - present
	if absent < 0 {
		absent = 0
	}
	return dto.Dashboard{
		Date:           dbtime.DateKey(in.Target, in.Loc),
		TotalEmployees: in.TotalEmployees,
		Present:        present,
		Absent:         absent,
		ActiveClockIns: CountOpen(in.DaySessions),
		ChartData:      BuildTrend(in.TrendSessions, in.Target, in.TrendDays, in.Loc),
		RecentActivity: BuildRecentActivity(in.RecentSessions, in.RecentLimit),
		DailyDetails:   BuildDailyDetails(in.Employees, in.DaySessions),
	}
}

/* ===================== Employee stats ===================== */

// BuildEmployeeStats expects sessions newest clock-in first.
func BuildEmployeeStats(emp dto.EmployeeSummary, sessions []repository.SessionRow, now time.Time, loc *time.Location) dto.EmployeeStats {
	today := dbtime.StartOfDay(now, loc)
	windowStart := today.AddDate(0, 0, -StatsWindowDays)
	monthStart := dbtime.StartOfMonth(now, loc)

	var biweekly, monthly float64
	completed := 0
	for _, s := range sessions {
		if !s.ClockInAt.Before(windowStart) {
			biweekly += hoursOf(s)
			if s.ClockOutAt != nil {
				completed++
			}
		}
		if !s.ClockInAt.Before(monthStart) {
			monthly += hoursOf(s)
		}
	}
	avg := 0.0
	if completed > 0 {
		avg = biweekly / float64(completed)
	}

	status := constants.EmployeeStatusClockedOut
	if len(sessions) > 0 && sessions[0].ClockOutAt == nil {
		status = constants.EmployeeStatusClockedIn
	}

	n := len(sessions)
	if n > StatsHistoryLimit {
		n = StatsHistoryLimit
	}
	history := make([]dto.HistoryItem, 0, n)
	for _, s := range sessions[:n] {
		history = append(history, dto.HistoryItem{
			ID:               s.ID,
			ClockInAt:        s.ClockInAt.UTC(),
			ClockOutAt:       utcPtr(s.ClockOutAt),
			TotalHours:       s.TotalHours,
			ClockInLocation:  s.ClockInLocation,
			ClockOutLocation: s.ClockOutLocation,
			IsManuallyEdited: s.IsManuallyEdited,
		})
	}

	return dto.EmployeeStats{
		Employee: emp,
		Stats: dto.StatsBlock{
			TotalMonthlyHours:  round2(monthly),
			TotalBiweeklyHours: round2(biweekly),
			TotalShifts:        completed,
			AvgHoursPerShift:   round2(avg),
			Status:             status,
		},
		History:   history,
		ChartData: BuildHoursTrend(sessions, today, StatsTrendDays, loc),
	}
}

// BuildHoursTrend reports, per day, the hours of the first session found for
// that date in newest-first order. A day with two sessions only shows one.
func BuildHoursTrend(sessions []repository.SessionRow, endDay time.Time, days int, loc *time.Location) []dto.HoursPoint {
	last := dbtime.StartOfDay(endDay, loc)
	out := make([]dto.HoursPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := last.AddDate(0, 0, -i).Format(dbtime.DateLayout)
		hours := 0.0
		for _, s := range sessions {
			if dbtime.DateKey(s.ClockInAt, loc) == key {
				hours = hoursOf(s)
				break
			}
		}
		out = append(out, dto.HoursPoint{Date: key, Hours: round2(hours)})
	}
	return out
}

/* ===================== Payroll ===================== */

type Window struct {
	Start time.Time
	End   time.Time // exclusive
}

// PayrollWindows returns n consecutive 14-day windows, newest first. The
// newest ends at the end of the current Sunday-started week.
func PayrollWindows(now time.Time, loc *time.Location, n int) []Window {
	if n <= 0 {
		n = 1
	}
	if n > MaxPayrollPeriods {
		n = MaxPayrollPeriods
	}
	end := dbtime.EndOfWeek(now, loc)
	out := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		start := end.AddDate(0, 0, -PayrollPeriodDays)
		out = append(out, Window{Start: start, End: end})
		end = start
	}
	return out
}

func periodLabel(w Window) string {
	last := w.End.AddDate(0, 0, -1)
	return fmt.Sprintf("%s - %s", w.Start.Format("Jan 02"), last.Format("Jan 02, 2006"))
}

// BuildPayroll groups sessions by window then employee. Every window is
// returned, empty ones included; employees without sessions in a window are
// left out of it.
func BuildPayroll(windows []Window, sessions []repository.SessionRow) []dto.PayrollPeriod {
	out := make([]dto.PayrollPeriod, 0, len(windows))
	for _, w := range windows {
		type acc struct {
			row   repository.SessionRow
			hours float64
		}
		byEmp := map[uuid.UUID]*acc{}
		for _, s := range sessions {
			if !inRange(s.ClockInAt, w.Start, w.End) {
				continue
			}
			a, ok := byEmp[s.EmployeeID]
			if !ok {
				a = &acc{row: s}
				byEmp[s.EmployeeID] = a
			}
			a.hours += hoursOf(s)
		}

		p := dto.PayrollPeriod{
			Period:    periodLabel(w),
			Start:     w.Start.Format(dbtime.DateLayout),
			End:       w.End.AddDate(0, 0, -1).Format(dbtime.DateLayout),
			Employees: make([]dto.PayrollLine, 0, len(byEmp)),
		}
		var totalHours, totalAmount float64
		for _, a := range byEmp {
			line := dto.PayrollLine{
				ID:           a.row.EmployeeID,
				EmployeeCode: a.row.EmployeeCode,
				Name:         a.row.Name,
				Hours:        round2(a.hours),
				Rate:         a.row.HourlyRate,
				Amount:       round2(a.hours * a.row.HourlyRate),
			}
			totalHours += a.hours
			totalAmount += line.Amount
			p.Employees = append(p.Employees, line)
		}
		sort.Slice(p.Employees, func(i, j int) bool {
			if p.Employees[i].Name != p.Employees[j].Name {
				return p.Employees[i].Name < p.Employees[j].Name
			}
			return p.Employees[i].EmployeeCode < p.Employees[j].EmployeeCode
		})
		p.TotalHours = round2(totalHours)
		p.TotalAmount = round2(totalAmount)
		out = append(out, p)
	}
	return out
}

/* ===================== Weekly history ===================== */

// BuildWeeklyHistory buckets sessions by Sunday week start, oldest week first.
// Weeks without sessions are omitted.
func BuildWeeklyHistory(sessions []repository.SessionRow, loc *time.Location) []dto.WeekBucket {
	buckets := map[string]*dto.WeekBucket{}
	for _, s := range sessions {
		key := dbtime.StartOfWeek(s.ClockInAt, loc).Format(dbtime.DateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &dto.WeekBucket{Week: key}
			buckets[key] = b
		}
		b.Hours += hoursOf(s)
		b.Count++
	}
	out := make([]dto.WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Hours = round2(b.Hours)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}
