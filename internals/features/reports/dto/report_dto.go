package dto

import (
	"time"

	"github.com/google/uuid"
)

type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
}

type ActivityEvent struct {
	SessionID    uuid.UUID `json:"session_id"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Name         string    `json:"name"`
	Type         string    `json:"type"` // CLOCK_IN | CLOCK_OUT
	At           time.Time `json:"at"`
	Location     *string   `json:"location"`
}

type DailyDetail struct {
	EmployeeID       uuid.UUID  `json:"employee_id"`
	EmployeeCode     string     `json:"employee_code"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	ClockIn          *time.Time `json:"clock_in"`
	ClockInLocation  *string    `json:"clock_in_location"`
	ClockOut         *time.Time `json:"clock_out"`
	ClockOutLocation *string    `json:"clock_out_location"`
	TotalHours       float64    `json:"total_hours"`
	Locations        []string   `json:"locations"`
}

type Dashboard struct {
	Date           string          `json:"date"`
	TotalEmployees int             `json:"total_employees"`
	Present        int             `json:"present"`
	Absent         int             `json:"absent"`
	ActiveClockIns int             `json:"active_clock_ins"`
	ChartData      []TrendPoint    `json:"chart_data"`
	RecentActivity []ActivityEvent `json:"recent_activity"`
	DailyDetails   []DailyDetail   `json:"daily_details"`
}

type EmployeeSummary struct {
	ID              uuid.UUID `json:"id"`
	EmployeeCode    string    `json:"employee_code"`
	Name            string    `json:"name"`
	Role            *string   `json:"role,omitempty"`
	HourlyRate      float64   `json:"hourly_rate"`
	MaxHoursPerWeek int       `json:"max_hours_per_week"`
	Archived        bool      `json:"archived"`
}

type StatsBlock struct {
	TotalMonthlyHours  float64 `json:"total_monthly_hours"`
	TotalBiweeklyHours float64 `json:"total_biweekly_hours"`
	TotalShifts        int     `json:"total_shifts"`
	AvgHoursPerShift   float64 `json:"avg_hours_per_shift"`
	Status             string  `json:"status"`
}

type HistoryItem struct {
	ID               uuid.UUID  `json:"id"`
	ClockInAt        time.Time  `json:"clock_in_at"`
	ClockOutAt       *time.Time `json:"clock_out_at"`
	TotalHours       *float64   `json:"total_hours"`
	ClockInLocation  *string    `json:"clock_in_location,omitempty"`
	ClockOutLocation *string    `json:"clock_out_location,omitempty"`
	IsManuallyEdited bool       `json:"is_manually_edited"`
}

type HoursPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type EmployeeStats struct {
	Employee  EmployeeSummary `json:"employee"`
	Stats     StatsBlock      `json:"stats"`
	History   []HistoryItem   `json:"history"`
	ChartData []HoursPoint    `json:"chart_data"`
}

type PayrollLine struct {
	ID           uuid.UUID `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	Name         string    `json:"name"`
	Hours        float64   `json:"hours"`
	Rate         float64   `json:"rate"`
	Amount       float64   `json:"amount"`
}

type PayrollPeriod struct {
	Period      string        `json:"period"`
	Start       string        `json:"start"`
	End         string        `json:"end"` // inclusive last day
	Employees   []PayrollLine `json:"employees"`
	TotalHours  float64       `json:"total_hours"`
	TotalAmount float64       `json:"total_amount"`
}

type WeekBucket struct {
	Week  string  `json:"week"`
	Hours float64 `json:"hours"`
	Count int     `json:"count"`
}
