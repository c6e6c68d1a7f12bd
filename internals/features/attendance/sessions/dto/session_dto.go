package dto

import (
	"time"

	"github.com/google/uuid"

	"kioskhr_backend/internals/features/attendance/sessions/model"
	employeeModel "kioskhr_backend/internals/features/employees/directory/model"
)

/* ===== Requests ===== */

type ClockRequest struct {
	Identifier string  `json:"identifier" validate:"required,max=120"`
	Location   *string `json:"location" validate:"omitempty,max=255"`
}

type EditSessionRequest struct {
	ClockInAt        *time.Time `json:"clock_in_at"`
	ClockOutAt       *time.Time `json:"clock_out_at"`
	ClockInLocation  *string    `json:"clock_in_location" validate:"omitempty,max=255"`
	ClockOutLocation *string    `json:"clock_out_location" validate:"omitempty,max=255"`
	Reason           string     `json:"reason" validate:"required,max=1000"`
}

type ManualCreateRequest struct {
	EmployeeID       uuid.UUID  `json:"employee_id" validate:"required"`
	ClockInAt        time.Time  `json:"clock_in_at" validate:"required"`
	ClockOutAt       *time.Time `json:"clock_out_at"`
	ClockInLocation  *string    `json:"clock_in_location" validate:"omitempty,max=255"`
	ClockOutLocation *string    `json:"clock_out_location" validate:"omitempty,max=255"`
	Reason           string     `json:"reason" validate:"required,max=1000"`
}

// UpsertDayRequest sets one business day's shift for an employee code.
type UpsertDayRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,max=32"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	ClockIn      string  `json:"clock_in" validate:"required"`
	ClockOut     *string `json:"clock_out"`
	Location     *string `json:"location" validate:"omitempty,max=255"`
	Reason       string  `json:"reason" validate:"required,max=1000"`
}

type DeleteSessionRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

/* ===== Responses ===== */

type EmployeeBrief struct {
	ID           uuid.UUID `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	Name         string    `json:"name"`
}

func BriefOf(e employeeModel.EmployeeModel) EmployeeBrief {
	return EmployeeBrief{ID: e.ID, EmployeeCode: e.EmployeeCode, Name: e.Name}
}

type SessionResponse struct {
	ID               uuid.UUID  `json:"id"`
	EmployeeID       uuid.UUID  `json:"employee_id"`
	ClockInAt        time.Time  `json:"clock_in_at"`
	ClockOutAt       *time.Time `json:"clock_out_at"`
	TotalHours       *float64   `json:"total_hours"`
	Location         *string    `json:"location,omitempty"`
	ClockInLocation  *string    `json:"clock_in_location,omitempty"`
	ClockOutLocation *string    `json:"clock_out_location,omitempty"`
	IsManuallyEdited bool       `json:"is_manually_edited"`
	EditedBy         *string    `json:"edited_by,omitempty"`
	EditedAt         *time.Time `json:"edited_at,omitempty"`
	EditReason       *string    `json:"edit_reason,omitempty"`
}

func FromModel(m model.AttendanceSessionModel) SessionResponse {
	return SessionResponse{
		ID:               m.ID,
		EmployeeID:       m.EmployeeID,
		ClockInAt:        m.ClockInAt.UTC(),
		ClockOutAt:       utcPtr(m.ClockOutAt),
		TotalHours:       m.TotalHours,
		Location:         m.Location,
		ClockInLocation:  m.ClockInLocation,
		ClockOutLocation: m.ClockOutLocation,
		IsManuallyEdited: m.IsManuallyEdited,
		EditedBy:         m.EditedBy,
		EditedAt:         utcPtr(m.EditedAt),
		EditReason:       m.EditReason,
	}
}

func FromModels(list []model.AttendanceSessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

type ClockResponse struct {
	Employee EmployeeBrief   `json:"employee"`
	Session  SessionResponse `json:"session"`
	Status   string          `json:"status"`
}

type StatusResponse struct {
	Employee    EmployeeBrief    `json:"employee"`
	Status      string           `json:"status"`
	IsClockedIn bool             `json:"is_clocked_in"`
	OpenSession *SessionResponse `json:"open_session"`
}

// Snapshot is the audit representation of a session.
type Snapshot struct {
	EmployeeID       uuid.UUID  `json:"employee_id"`
	ClockInAt        time.Time  `json:"clock_in_at"`
	ClockOutAt       *time.Time `json:"clock_out_at"`
	TotalHours       *float64   `json:"total_hours"`
	Location         *string    `json:"location"`
	ClockInLocation  *string    `json:"clock_in_location"`
	ClockOutLocation *string    `json:"clock_out_location"`
}

func SnapshotOf(m model.AttendanceSessionModel) Snapshot {
	return Snapshot{
		EmployeeID:       m.EmployeeID,
		ClockInAt:        m.ClockInAt.UTC(),
		ClockOutAt:       utcPtr(m.ClockOutAt),
		TotalHours:       m.TotalHours,
		Location:         m.Location,
		ClockInLocation:  m.ClockInLocation,
		ClockOutLocation: m.ClockOutLocation,
	}
}
