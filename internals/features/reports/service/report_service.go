package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"kioskhr_backend/internals/configs"
	"kioskhr_backend/internals/features/reports/dto"
	"kioskhr_backend/internals/features/reports/repository"
	"kioskhr_backend/internals/helpers/dbtime"
)

var ErrEmployeeNotFound = fiber.NewError(fiber.StatusNotFound, "employee not found")

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

// Dashboard builds the snapshot for the business day containing target
// (today when nil). The independent reads run concurrently.
func (s *Service) Dashboard(ctx context.Context, target *time.Time) (*dto.Dashboard, error) {
	loc := dbtime.Loc()
	day := s.now()
	if target != nil {
		day = *target
	}
	dayStart, dayEnd := dbtime.DayBounds(day, loc)
	trendDays := configs.TrendDays
	trendStart := dayStart.AddDate(0, 0, -(trendDays - 1))

	var (
		total     int64
		employees []repository.EmployeeRow
		daySess   []repository.SessionRow
		trendSess []repository.SessionRow
		recent    []repository.SessionRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = repository.CountActiveEmployees(gctx, s.DB)
		return wrap("count employees", err)
	})
	g.Go(func() (err error) {
		employees, err = repository.ListActiveEmployees(gctx, s.DB)
		return wrap("list employees", err)
	})
	g.Go(func() (err error) {
		daySess, err = repository.SessionsBetween(gctx, s.DB, dayStart, dayEnd, true)
		return wrap("day sessions", err)
	})
	g.Go(func() (err error) {
		trendSess, err = repository.SessionsBetween(gctx, s.DB, trendStart, dayEnd, true)
		return wrap("trend sessions", err)
	})
	g.Go(func() (err error) {
		recent, err = repository.RecentSessions(gctx, s.DB, RecentSessionScan)
		return wrap("recent sessions", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := BuildDashboard(DashboardInput{
		Target:         dayStart,
		Loc:            loc,
		TotalEmployees: int(total),
		Employees:      employees,
		DaySessions:    daySess,
		TrendSessions:  trendSess,
		RecentSessions: recent,
		TrendDays:      trendDays,
		RecentLimit:    configs.RecentActivityLimit,
	})
	return &out, nil
}

func (s *Service) EmployeeStats(ctx context.Context, employeeID uuid.UUID) (*dto.EmployeeStats, error) {
	emp, err := repository.FindEmployee(ctx, s.DB, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, wrap("load employee", err)
	}
	sessions, err := repository.EmployeeSessions(ctx, s.DB, employeeID)
	if err != nil {
		return nil, wrap("employee sessions", err)
	}

	summary := dto.EmployeeSummary{
		ID:              emp.ID,
		EmployeeCode:    emp.EmployeeCode,
		Name:            emp.Name,
		Role:            emp.Role,
		HourlyRate:      emp.HourlyRate,
		MaxHoursPerWeek: emp.MaxHoursPerWeek,
		Archived:        emp.DeletedAt.Valid,
	}
	out := BuildEmployeeStats(summary, sessions, s.now(), dbtime.Loc())
	return &out, nil
}

// Payroll returns periods newest first. periods <= 0 uses the configured default.
func (s *Service) Payroll(ctx context.Context, periods int) ([]dto.PayrollPeriod, error) {
	if periods <= 0 {
		periods = configs.PayrollPeriods
	}
	windows := PayrollWindows(s.now(), dbtime.Loc(), periods)
	oldest := windows[len(windows)-1].Start
	newest := windows[0].End

	// archived employees still get paid for hours they worked
	sessions, err := repository.SessionsBetween(ctx, s.DB, oldest, newest, false)
	if err != nil {
		return nil, wrap("payroll sessions", err)
	}
	return BuildPayroll(windows, sessions), nil
}

func (s *Service) WeeklyHistory(ctx context.Context) ([]dto.WeekBucket, error) {
	loc := dbtime.Loc()
	now := s.now()
	from := dbtime.StartOfWeek(now, loc).AddDate(0, 0, -7*(WeeklyHistorySpan-1))
	to := dbtime.EndOfWeek(now, loc)
	sessions, err := repository.SessionsBetween(ctx, s.DB, from, to, false)
	if err != nil {
		return nil, wrap("weekly sessions", err)
	}
	return BuildWeeklyHistory(sessions, loc), nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
