package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	employeeModel "kioskhr_backend/internals/features/employees/directory/model"
)

// OpenSessionIndex allows at most one row with clock_out_at IS NULL per employee.
const OpenSessionIndex = "uq_attendance_sessions_open_per_employee"

type AttendanceSessionModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index" json:"employee_id"`

	ClockInAt  time.Time  `gorm:"column:clock_in_at;not null;index" json:"clock_in_at"`
	ClockOutAt *time.Time `gorm:"column:clock_out_at" json:"clock_out_at"`
	TotalHours *float64   `gorm:"column:total_hours" json:"total_hours"`

	Location         *string `gorm:"column:location;type:varchar(255)" json:"location,omitempty"`
	ClockInLocation  *string `gorm:"column:clock_in_location;type:varchar(255)" json:"clock_in_location,omitempty"`
	ClockOutLocation *string `gorm:"column:clock_out_location;type:varchar(255)" json:"clock_out_location,omitempty"`

	// latest manual edit only; full history lives in attendance_audit_events
	IsManuallyEdited bool       `gorm:"column:is_manually_edited;not null;default:false" json:"is_manually_edited"`
	EditedBy         *string    `gorm:"column:edited_by;type:varchar(255)" json:"edited_by,omitempty"`
	EditedAt         *time.Time `gorm:"column:edited_at" json:"edited_at,omitempty"`
	EditReason       *string    `gorm:"column:edit_reason;type:text" json:"edit_reason,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Employee *employeeModel.EmployeeModel `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

func (s *AttendanceSessionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s AttendanceSessionModel) IsOpen() bool { return s.ClockOutAt == nil }

// HoursBetween returns the fractional hours from in to out, never negative.
func HoursBetween(in, out time.Time) float64 {
	h := out.Sub(in).Hours()
	if h < 0 {
		return 0
	}
	return h
}
