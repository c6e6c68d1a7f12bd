package constants

// Per-employee day status on the dashboard.
const (
	DayStatusAbsent    = "ABSENT"
	DayStatusClockedIn = "CLOCKED_IN"
	DayStatusCompleted = "COMPLETED"
)

// Current status on the employee profile.
const (
	EmployeeStatusClockedIn  = "CLOCKED_IN"
	EmployeeStatusClockedOut = "CLOCKED_OUT"
)

// Recent activity event types.
const (
	EventClockIn  = "CLOCK_IN"
	EventClockOut = "CLOCK_OUT"
)

// Audit actions recorded in attendance_audit_events.
const (
	AuditManualCreate  = "MANUAL_CREATE"
	AuditManualEdit    = "MANUAL_EDIT"
	AuditDayUpsert     = "DAY_UPSERT"
	AuditDelete        = "DELETE"
	AuditEmployeePurge = "EMPLOYEE_PURGE"
)

// Locals keys filled by the HR auth middleware.
const (
	LocHREmail = "hr_email"
	LocHRID    = "hr_id"
	LocRawJWT  = "raw_token"
	LocReqID   = "reqid"
)

// SessionCookie carries the HR JWT for browser clients.
const SessionCookie = "session"
