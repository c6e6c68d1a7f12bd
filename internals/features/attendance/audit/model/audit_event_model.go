package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttendanceAuditEventModel is append-only. SessionID has no foreign key so the
// trail outlives deleted sessions.
type AttendanceAuditEventModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"column:session_id;type:uuid;not null;index" json:"session_id"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index" json:"employee_id"`

	Action string `gorm:"column:action;type:varchar(32);not null" json:"action"`
	Actor  string `gorm:"column:actor;type:varchar(255);not null" json:"actor"`
	Reason string `gorm:"column:reason;type:text;not null" json:"reason"`

	Before datatypes.JSON `gorm:"column:before" json:"before,omitempty"`
	After  datatypes.JSON `gorm:"column:after" json:"after,omitempty"`
	Patch  string         `gorm:"column:patch;type:text" json:"patch,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (AttendanceAuditEventModel) TableName() string { return "attendance_audit_events" }

func (e *AttendanceAuditEventModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
