package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"kioskhr_backend/internals/configs"
	sessionModel "kioskhr_backend/internals/features/attendance/sessions/model"
	"kioskhr_backend/internals/features/users/auth/service"
)

const jobTimeout = 30 * time.Second

// Start registers the maintenance jobs and starts the cron runner.
// Callers stop it with (*cron.Cron).Stop on shutdown.
func Start(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(configs.BusinessLocation))

	if _, err := c.AddFunc(configs.CleanupCron, func() { CleanupBlacklist(db, time.Now().UTC()) }); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(configs.StaleSweepCron, func() { WarnStaleSessions(db, time.Now().UTC()) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[INFO] scheduler started (cleanup=%q, stale sweep=%q)", configs.CleanupCron, configs.StaleSweepCron)
	return c, nil
}

// CleanupBlacklist removes blacklist rows expired for more than TokenBlacklistTTLDays.
func CleanupBlacklist(db *gorm.DB, now time.Time) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := now.Add(-time.Duration(configs.TokenBlacklistTTLDays) * 24 * time.Hour)
	n, err := service.PurgeExpired(ctx, db, cutoff)
	if err != nil {
		log.Printf("[CLEANUP ERROR] token_blacklist purge failed: %v", err)
		return 0
	}
	log.Printf("[CLEANUP] %d expired blacklist tokens removed", n)
	return n
}

// WarnStaleSessions logs sessions open longer than StaleSessionHours. Nothing is closed automatically.
func WarnStaleSessions(db *gorm.DB, now time.Time) []sessionModel.AttendanceSessionModel {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := now.Add(-time.Duration(configs.StaleSessionHours) * time.Hour)
	var stale []sessionModel.AttendanceSessionModel
	if err := db.WithContext(ctx).
		Preload("Employee").
		Where("clock_out_at IS NULL AND clock_in_at < ?", cutoff).
		Order("clock_in_at ASC").
		Find(&stale).Error; err != nil {
		log.Printf("[ATTENDANCE] stale session sweep failed: %v", err)
		return nil
	}
	for _, s := range stale {
		code := s.EmployeeID.String()
		if s.Employee != nil {
			code = s.Employee.EmployeeCode
		}
		log.Printf("[ATTENDANCE] open session %s for %s since %s (%.1fh)",
			s.ID, code, s.ClockInAt.Format(time.RFC3339), now.Sub(s.ClockInAt).Hours())
	}
	return stale
}
