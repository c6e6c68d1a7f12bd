package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kioskhr_backend/internals/features/employees/directory/model"
	"kioskhr_backend/internals/helpers/dbtime"
)

type CreateEmployeeRequest struct {
	EmployeeCode    *string  `json:"employee_code" validate:"omitempty,max=32"`
	Name            string   `json:"name" validate:"required,max=120"`
	Role            *string  `json:"role" validate:"omitempty,max=120"`
	HourlyRate      *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	MaxHoursPerWeek *int     `json:"max_hours_per_week" validate:"omitempty,gt=0,lte=168"`
	Location        *string  `json:"location" validate:"omitempty,max=120"`
	Gender          *string  `json:"gender" validate:"omitempty,max=20"`
	PhoneNumber     *string  `json:"phone_number" validate:"omitempty,max=40"`
	DateOfBirth     *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	JoinDate        *string  `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	EmployeeCode    *string  `json:"employee_code" validate:"omitempty,min=1,max=32"`
	Name            *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Role            *string  `json:"role" validate:"omitempty,max=120"`
	HourlyRate      *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	MaxHoursPerWeek *int     `json:"max_hours_per_week" validate:"omitempty,gt=0,lte=168"`
	Location        *string  `json:"location" validate:"omitempty,max=120"`
	Gender          *string  `json:"gender" validate:"omitempty,max=20"`
	PhoneNumber     *string  `json:"phone_number" validate:"omitempty,max=40"`
	DateOfBirth     *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	JoinDate        *string  `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID              uuid.UUID  `json:"id"`
	EmployeeCode    string     `json:"employee_code"`
	Name            string     `json:"name"`
	Role            *string    `json:"role,omitempty"`
	HourlyRate      float64    `json:"hourly_rate"`
	MaxHoursPerWeek int        `json:"max_hours_per_week"`
	Location        *string    `json:"location,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	PhoneNumber     *string    `json:"phone_number,omitempty"`
	DateOfBirth     *string    `json:"date_of_birth,omitempty"`
	JoinDate        *string    `json:"join_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dbtime.DateLayout)
	return &s
}

func FromModel(m model.EmployeeModel) EmployeeResponse {
	r := EmployeeResponse{
		ID:              m.ID,
		EmployeeCode:    m.EmployeeCode,
		Name:            m.Name,
		Role:            m.Role,
		HourlyRate:      m.HourlyRate,
		MaxHoursPerWeek: m.MaxHoursPerWeek,
		Location:        m.Location,
		Gender:          m.Gender,
		PhoneNumber:     m.PhoneNumber,
		DateOfBirth:     formatDate(m.DateOfBirth),
		JoinDate:        formatDate(m.JoinDate),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		r.ArchivedAt = &t
	}
	return r
}

func FromModels(list []model.EmployeeModel) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := time.ParseInLocation(dbtime.DateLayout, strings.TrimSpace(*s), time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// ToModel builds a new employee; EmployeeCode may be empty and is filled by the service.
func (r CreateEmployeeRequest) ToModel() model.EmployeeModel {
	m := model.EmployeeModel{
		Name:            strings.TrimSpace(r.Name),
		Role:            trimPtr(r.Role),
		MaxHoursPerWeek: model.DefaultMaxHoursPerWeek,
		Location:        trimPtr(r.Location),
		Gender:          trimPtr(r.Gender),
		PhoneNumber:     trimPtr(r.PhoneNumber),
		DateOfBirth:     parseDatePtr(r.DateOfBirth),
		JoinDate:        parseDatePtr(r.JoinDate),
	}
	if c := trimPtr(r.EmployeeCode); c != nil {
		m.EmployeeCode = *c
	}
	if r.HourlyRate != nil {
		m.HourlyRate = *r.HourlyRate
	}
	if r.MaxHoursPerWeek != nil {
		m.MaxHoursPerWeek = *r.MaxHoursPerWeek
	}
	return m
}

// ToUpdates returns a column map for gorm Updates.
func (r UpdateEmployeeRequest) ToUpdates() map[string]any {
	u := map[string]any{}
	if c := trimPtr(r.EmployeeCode); c != nil {
		u["employee_code"] = *c
	}
	if n := trimPtr(r.Name); n != nil {
		u["name"] = *n
		u["name_key"] = model.NameKeyOf(*n)
	}
	if r.Role != nil {
		u["role"] = trimPtr(r.Role)
	}
	if r.HourlyRate != nil {
		u["hourly_rate"] = *r.HourlyRate
	}
	if r.MaxHoursPerWeek != nil {
		u["max_hours_per_week"] = *r.MaxHoursPerWeek
	}
	if r.Location != nil {
		u["location"] = trimPtr(r.Location)
	}
	if r.Gender != nil {
		u["gender"] = trimPtr(r.Gender)
	}
	if r.PhoneNumber != nil {
		u["phone_number"] = trimPtr(r.PhoneNumber)
	}
	if r.DateOfBirth != nil {
		u["date_of_birth"] = parseDatePtr(r.DateOfBirth)
	}
	if r.JoinDate != nil {
		u["join_date"] = parseDatePtr(r.JoinDate)
	}
	return u
}
