package events

import "time"

const (
	LeaveDecidedTopic = "hr.leave.decided.v1"
	LeaveDecidedType  = "leave_decided"
)

type LeaveDecidedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	UserID        string    `json:"user_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeEmail string    `json:"employee_email"`
	Decision      string    `json:"decision"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	DecidedBy     string    `json:"decided_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
