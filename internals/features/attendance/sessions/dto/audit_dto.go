package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	auditModel "kioskhr_backend/internals/features/attendance/audit/model"
	"kioskhr_backend/internals/features/attendance/sessions/model"
)

type AuditEventResponse struct {
	ID        uuid.UUID       `json:"id"`
	Action    string          `json:"action"`
	Actor     string          `json:"actor"`
	Reason    string          `json:"reason"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	Patch     string          `json:"patch,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type LatestEdit struct {
	IsManuallyEdited bool       `json:"is_manually_edited"`
	EditedBy         *string    `json:"edited_by"`
	EditedAt         *time.Time `json:"edited_at"`
	EditReason       *string    `json:"edit_reason"`
}

// AuditTrailResponse carries the session (nil once deleted), its latest
// edit stamp and every audit event, oldest first.
type AuditTrailResponse struct {
	SessionID  uuid.UUID            `json:"session_id"`
	Session    *SessionResponse     `json:"session"`
	LatestEdit *LatestEdit          `json:"latest_edit"`
	Events     []AuditEventResponse `json:"events"`
}

func FromAuditEvents(list []auditModel.AttendanceAuditEventModel) []AuditEventResponse {
	out := make([]AuditEventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, AuditEventResponse{
			ID:        e.ID,
			Action:    e.Action,
			Actor:     e.Actor,
			Reason:    e.Reason,
			Before:    json.RawMessage(e.Before),
			After:     json.RawMessage(e.After),
			Patch:     e.Patch,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

func LatestEditOf(m model.AttendanceSessionModel) *LatestEdit {
	return &LatestEdit{
		IsManuallyEdited: m.IsManuallyEdited,
		EditedBy:         m.EditedBy,
		EditedAt:         utcPtr(m.EditedAt),
		EditReason:       m.EditReason,
	}
}
