package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	Port      string
	JWTSecret string
	JWTTTL    = 2 * time.Hour

	// BusinessTimezone decides where a "day" starts for dashboards and payroll.
	BusinessTimezone = "UTC"
	BusinessLocation = time.UTC

	TrendDays             = 14
	RecentActivityLimit   = 5
	PayrollPeriods        = 4
	StaleSessionHours     = 16
	TokenBlacklistTTLDays = 7
	CleanupCron           = "15 2 * * *"
	StaleSweepCron        = "@hourly"
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env file not found, using system environment")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] running on Railway, using system environment")
	}

	Port = GetEnv("PORT", "3000")
	JWTSecret = GetEnv("JWT_SECRET")
	if ttl, err := time.ParseDuration(GetEnv("JWT_TTL", "2h")); err == nil && ttl > 0 {
		JWTTTL = ttl
	}

	SetBusinessTimezone(GetEnv("BUSINESS_TIMEZONE", "UTC"))

	TrendDays = GetEnvInt("TREND_DAYS", 14)
	RecentActivityLimit = GetEnvInt("RECENT_ACTIVITY_LIMIT", 5)
	PayrollPeriods = GetEnvInt("PAYROLL_PERIODS", 4)
	StaleSessionHours = GetEnvInt("STALE_SESSION_HOURS", 16)
	TokenBlacklistTTLDays = GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	CleanupCron = GetEnv("CLEANUP_CRON", "15 2 * * *")
	StaleSweepCron = GetEnv("STALE_SWEEP_CRON", "@hourly")

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	} else {
		log.Println("[INFO] JWT_SECRET loaded")
	}
	log.Printf("[INFO] business timezone: %s", BusinessTimezone)
}

// SetBusinessTimezone falls back to UTC when the name cannot be loaded.
func SetBusinessTimezone(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] unknown BUSINESS_TIMEZONE %q, falling back to UTC: %v", name, err)
		BusinessTimezone = "UTC"
		BusinessLocation = time.UTC
		return
	}
	BusinessTimezone = name
	BusinessLocation = loc
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func GetEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !isRecordNotFound(err):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}

func isRecordNotFound(err error) bool {
	return err != nil && err.Error() == "record not found"
}
