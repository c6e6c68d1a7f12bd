package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultMaxHoursPerWeek = 40

type EmployeeModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeCode string    `gorm:"column:employee_code;type:varchar(32);not null;uniqueIndex:uq_employees_code" json:"employee_code"`
	Name         string    `gorm:"column:name;type:varchar(120);not null;index" json:"name"`
	Role         *string   `gorm:"column:role;type:varchar(120)" json:"role,omitempty"`

	// NameKey is the Unicode-folded name used by kiosk lookup; LOWER() in sqlite only folds ASCII.
	NameKey string `gorm:"column:name_key;type:varchar(120);not null;default:'';index:idx_employees_name_key" json:"-"`

	HourlyRate      float64 `gorm:"column:hourly_rate;type:decimal(10,2);not null;default:0;check:chk_employees_hourly_rate,hourly_rate >= 0" json:"hourly_rate"`
	MaxHoursPerWeek int     `gorm:"column:max_hours_per_week;not null;default:40;check:chk_employees_max_hours,max_hours_per_week > 0" json:"max_hours_per_week"`

	Location    *string    `gorm:"column:location;type:varchar(120)" json:"location,omitempty"`
	Gender      *string    `gorm:"column:gender;type:varchar(20)" json:"gender,omitempty"`
	PhoneNumber *string    `gorm:"column:phone_number;type:varchar(40)" json:"phone_number,omitempty"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth,omitempty"`
	JoinDate    *time.Time `gorm:"column:join_date;type:date" json:"join_date,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (EmployeeModel) TableName() string { return "employees" }

func (e *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.NameKey = NameKeyOf(e.Name)
	if e.MaxHoursPerWeek <= 0 {
		e.MaxHoursPerWeek = DefaultMaxHoursPerWeek
	}
	return nil
}

// NameKeyOf folds a display name for case-insensitive matching.
func NameKeyOf(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
